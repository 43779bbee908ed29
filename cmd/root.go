package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dances",
	Short: "Schubert dance score tools",
	Long:  `Parses MuseScore 3 files into measure, section and note tables.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
