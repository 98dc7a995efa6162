package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"fretwork/engine"
	"fretwork/fretboard"
	"fretwork/theory"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "scales":
		listScales()
	case "tab":
		printTab(os.Args[2:])
	case "ports":
		listPorts()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("fretdump - scale pattern dumps without the TUI")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  scales                        - list known scales")
	fmt.Println("  tab <root> <scale> [pattern]  - print a pattern as tablature")
	fmt.Println("  ports                         - list MIDI output ports")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  fretdump tab C Major")
	fmt.Println("  fretdump tab Bb \"Minor Pentatonic\" 3")
}

func listScales() {
	repo := theory.NewRepository()
	for _, name := range repo.GetNames() {
		intervals, _ := repo.GetScale(name, 0)
		fmt.Printf("  %-18s %v\n", name, intervals)
	}
}

func printTab(args []string) {
	if len(args) < 2 {
		usage()
		return
	}
	root, ok := parseRoot(args[0])
	if !ok {
		fmt.Printf("unknown root %q\n", args[0])
		return
	}
	scaleName := args[1]
	pattern := 1
	if len(args) > 2 {
		if n, err := strconv.Atoi(args[2]); err == nil {
			pattern = n
		}
	}

	eng := engine.New(theory.NewRepository(), fretboard.Standard())
	res := eng.Compute(engine.Query{Root: root, Scale: scaleName, Pattern: pattern})
	if len(res.Pattern) == 0 {
		fmt.Printf("unknown scale %q\n", scaleName)
		return
	}

	box := make(map[int]map[int]bool)
	for _, p := range res.Pattern {
		if box[p.String] == nil {
			box[p.String] = make(map[int]bool)
		}
		box[p.String][p.Fret] = true
	}

	fmt.Printf("%s %s, pattern %d (frets %d-%d)\n\n",
		args[0], scaleName, pattern, res.MinFret, res.MaxFret)

	tun := fretboard.Standard()
	for s := fretboard.NumStrings - 1; s >= 0; s-- {
		d, a := theory.SpellInKey(tun.OpenClass(s), theory.TableForKey(0))
		fmt.Printf("%-2s|", theory.NoteName(d, a))
		for fret := 0; fret <= fretboard.NeckLength; fret++ {
			if box[s][fret] {
				fmt.Printf("%2d-", fret)
			} else {
				fmt.Print("---")
			}
		}
		fmt.Println("|")
	}

	fmt.Print("\nnotes:")
	for _, p := range res.Pattern {
		if p.String == 0 || p.Quality.Simple() == theory.Unison {
			fmt.Printf(" %s(%s)", p.Name(), p.Quality)
		}
	}
	fmt.Println("")
}

func parseRoot(name string) (theory.PitchClass, bool) {
	roots := map[string]theory.PitchClass{
		"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3,
		"E": 4, "F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8,
		"Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11,
	}
	p, ok := roots[name]
	return p, ok
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ch := make(chan []string, 1)
	go func() {
		var names []string
		for _, p := range gomidi.GetOutPorts() {
			names = append(names, p.String())
		}
		ch <- names
	}()

	select {
	case names := <-ch:
		for i, name := range names {
			fmt.Printf("  %d: %s\n", i, name)
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! The MIDI backend is hung.")
	}
}
