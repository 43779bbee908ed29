package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"

	"github.com/annotatorB/schubert-dances/constants"
	"github.com/annotatorB/schubert-dances/db"
	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/score"
	"github.com/annotatorB/schubert-dances/tsv"
	"github.com/annotatorB/schubert-dances/util"
)

var (
	extractJobs       int
	extractMax        int
	extractSeparators []string
	extractMetadata   bool
)

func init() {
	extractCmd.Flags().IntVar(&extractJobs, "jobs", 4, "parallel parse workers")
	extractCmd.Flags().IntVar(&extractMax, "max", 0, "stop after this many scores (0 = all)")
	extractCmd.Flags().StringSliceVar(&extractSeparators, "separators", nil, "barline subtypes that split sections (default: double)")
	extractCmd.Flags().BoolVar(&extractMetadata, "metadata", false, "fetch score metadata from DynamoDB")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [scores dir]",
	Short: "Extracts measure and note tables",
	Long:  `Extracts measure and note tables`,
	Run: func(cmd *cobra.Command, args []string) {
		dir := constants.GetScoresDir()
		if len(args) == 1 {
			dir = args[0]
		}
		extract(dir)
	},
}

func scoreOptions() []score.Option {
	if len(extractSeparators) == 0 {
		return nil
	}
	set := make(map[string]bool)
	for _, s := range extractSeparators {
		set[s] = true
	}
	return []score.Option{score.WithSeparators(set)}
}

func writeTables(s *score.Score) error {
	base := strings.TrimSuffix(s.Filename, filepath.Ext(s.Filename))

	mf, err := os.Create(filepath.Join(constants.GetOutDir(), base+"_measures.tsv"))
	if err != nil {
		return err
	}
	defer mf.Close()
	if err := tsv.WriteMeasureList(mf, s.Measures); err != nil {
		return err
	}

	nf, err := os.Create(filepath.Join(constants.GetOutDir(), base+"_notes.tsv"))
	if err != nil {
		return err
	}
	defer nf.Close()
	return tsv.WriteNoteList(nf, s.Notes)
}

func extract(dir string) {
	util.RecreateDir(constants.GetOutDir())
	paths := util.GatherScorePaths(dir, extractMax)
	if len(paths) == 0 {
		fmt.Printf("no .mscx files under %v\n", dir)
		return
	}
	opts := scoreOptions()

	var mu sync.Mutex
	var done, failed, flagged int
	var parsed []string
	debounced := debounce.New(100 * time.Millisecond)
	progress := func() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Printf("processed %v/%v scores\n", done, len(paths))
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < extractJobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				s, err := score.ParseFile(path, opts...)
				if err == nil {
					if werr := writeTables(s); werr != nil {
						panic("Could not write tables: " + werr.Error())
					}
				}
				mu.Lock()
				done++
				if err != nil {
					failed++
					fmt.Printf("%v: %v\n", path, err)
				} else {
					if s.Diags.Has(diag.Structural) {
						flagged++
						fmt.Printf("%v:\n%v", path, s.Diags.String())
					}
					parsed = append(parsed, s.Filename)
				}
				mu.Unlock()
				debounced(progress)
			}
		}()
	}
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	fmt.Printf("parsed %v scores (%v failed, %v with structural findings)\n", done, failed, flagged)
	if extractMetadata {
		fetchMetadata(parsed)
	}
}

// fetchMetadata looks up each parsed filename in DynamoDB and writes the
// combined result as metadata.json. BatchGetItem caps at 10 keys per call.
func fetchMetadata(filenames []string) {
	all := make(map[string]model.ScoreMetadata)
	for start := 0; start < len(filenames); start += 10 {
		end := start + 10
		if end > len(filenames) {
			end = len(filenames)
		}
		for name, md := range db.GetScoreMetadatas(filenames[start:end]) {
			all[name] = md
		}
	}

	f, err := os.Create(filepath.Join(constants.GetOutDir(), "metadata.json"))
	if err != nil {
		panic("Could not create metadata file: " + err.Error())
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		panic("Could not write metadata file: " + err.Error())
	}
}
