package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annotatorB/schubert-dances/score"
	"github.com/annotatorB/schubert-dances/smfout"
)

var midiBPM float64

func init() {
	midiCmd.Flags().Float64Var(&midiBPM, "bpm", 120, "tempo of the rendered file")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi <score.mscx> <out.mid>",
	Short: "Renders a score to a MIDI file",
	Long:  `Renders a score to a MIDI file, played through in section play order`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			panic("Need 2 args...")
		}
		renderMidi(args[0], args[1])
	},
}

func renderMidi(in, out string) {
	s, err := score.ParseFile(in, scoreOptions()...)
	if err != nil {
		panic("Could not parse score: " + err.Error())
	}
	if err := smfout.WriteFile(s, out, smfout.Options{BPM: midiBPM}); err != nil {
		panic("Could not write midi file: " + err.Error())
	}
	fmt.Printf("wrote %v\n", out)
}
