package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annotatorB/schubert-dances/rhythm"
	"github.com/annotatorB/schubert-dances/score"
	"github.com/annotatorB/schubert-dances/util"
)

var inspectRhythm bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectRhythm, "rhythm", false, "print the rhythm syllable pattern per measure")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score.mscx>",
	Short: "Inspects a score's structure",
	Long:  `Inspects a score's structure`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	s, err := score.ParseFile(path, scoreOptions()...)
	if err != nil {
		panic("Could not parse score: " + err.Error())
	}

	fmt.Printf("%v: %v measures, %v notes\n", s.Filename, s.MeasureCount(), len(s.Notes))
	for _, sec := range s.Sections {
		fmt.Printf("  %v\n", sec)
	}
	if len(s.SuperSections) > 0 {
		fmt.Printf("super sections: %v\n", s.SuperSections)
	}
	fmt.Printf("play order: %v\n", s.PlayOrder)

	if s.Diags.Len() > 0 {
		fmt.Printf("findings:\n%v", s.Diags.String())
	}

	if inspectRhythm {
		patterns, err := rhythm.Patterns(s)
		if err != nil {
			panic("Could not compute patterns: " + err.Error())
		}
		for _, mn := range util.SortedKeys(patterns) {
			fmt.Printf("mn %v: %v\n", mn, patterns[mn])
		}
	}
}
