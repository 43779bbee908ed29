package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/annotatorB/schubert-dances/constants"
	"github.com/annotatorB/schubert-dances/mscx"
	"github.com/annotatorB/schubert-dances/score"
	"github.com/annotatorB/schubert-dances/tsv"
	"github.com/annotatorB/schubert-dances/util"
)

var (
	scoresMu sync.RWMutex
	scores   = make(map[string]*score.Score)
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves parsed scores over HTTP",
	Long:  `Serves parsed scores over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

type scoreSummary struct {
	Id       string `json:"id"`
	Filename string `json:"filename"`
	Measures int    `json:"measures"`
	Sections int    `json:"sections"`
	Notes    int    `json:"notes"`
	Findings int    `json:"findings"`
}

func summarize(id string, s *score.Score) scoreSummary {
	return scoreSummary{
		Id:       id,
		Filename: s.Filename,
		Measures: s.MeasureCount(),
		Sections: len(s.Sections),
		Notes:    len(s.Notes),
		Findings: s.Diags.Len(),
	}
}

func lookupScore(w http.ResponseWriter, r *http.Request) *score.Score {
	id := mux.Vars(r)["id"]
	scoresMu.RLock()
	s := scores[id]
	scoresMu.RUnlock()
	if s == nil {
		http.Error(w, "no score with id "+id, 404)
	}
	return s
}

// HandleCreateScore parses the request body as an MSCX document and stores
// the result under a fresh id.
func HandleCreateScore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "could not read body: "+err.Error(), 400)
		return
	}
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "untitled.mscx"
	}

	doc, err := mscx.Read(bytes.NewReader(body))
	if err != nil {
		http.Error(w, "could not decode score: "+err.Error(), 400)
		return
	}
	s, err := score.Parse(doc, filename)
	if err != nil {
		http.Error(w, "could not parse score: "+err.Error(), 422)
		return
	}

	id := uuid.NewString()
	scoresMu.Lock()
	scores[id] = s
	scoresMu.Unlock()

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(summarize(id, s))
}

func HandleListScores(w http.ResponseWriter, r *http.Request) {
	scoresMu.RLock()
	res := make([]scoreSummary, 0, len(scores))
	for id, s := range scores {
		res = append(res, summarize(id, s))
	}
	scoresMu.RUnlock()
	json.NewEncoder(w).Encode(res)
}

func HandleGetMeasures(w http.ResponseWriter, r *http.Request) {
	s := lookupScore(w, r)
	if s == nil {
		return
	}
	w.Header().Set("Content-Type", "text/tab-separated-values")
	if err := tsv.WriteMeasureList(w, s.Measures); err != nil {
		fmt.Printf("Could not write measure list: %v\n", err)
	}
}

func HandleGetNotes(w http.ResponseWriter, r *http.Request) {
	s := lookupScore(w, r)
	if s == nil {
		return
	}
	w.Header().Set("Content-Type", "text/tab-separated-values")
	if err := tsv.WriteNoteList(w, s.Notes); err != nil {
		fmt.Printf("Could not write note list: %v\n", err)
	}
}

func HandleGetSections(w http.ResponseWriter, r *http.Request) {
	s := lookupScore(w, r)
	if s == nil {
		return
	}
	json.NewEncoder(w).Encode(struct {
		Sections      interface{} `json:"sections"`
		SuperSections [][]int     `json:"superSections"`
		PlayOrder     []int       `json:"playOrder"`
	}{s.Sections, s.SuperSections, s.PlayOrder})
}

func HandleGetDiagnostics(w http.ResponseWriter, r *http.Request) {
	s := lookupScore(w, r)
	if s == nil {
		return
	}
	json.NewEncoder(w).Encode(s.Diags.All())
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scores", HandleListScores).Methods("GET")
	router.HandleFunc("/scores", HandleCreateScore).Methods("POST")
	router.HandleFunc("/scores/{id}/measures", HandleGetMeasures).Methods("GET")
	router.HandleFunc("/scores/{id}/notes", HandleGetNotes).Methods("GET")
	router.HandleFunc("/scores/{id}/sections", HandleGetSections).Methods("GET")
	router.HandleFunc("/scores/{id}/diagnostics", HandleGetDiagnostics).Methods("GET")
	return router
}

func loadScoresDir() {
	paths := util.GatherScorePaths(constants.GetScoresDir(), 0)
	for _, path := range paths {
		s, err := score.ParseFile(path)
		if err != nil {
			fmt.Printf("%v: %v\n", path, err)
			continue
		}
		scoresMu.Lock()
		scores[uuid.NewString()] = s
		scoresMu.Unlock()
	}
	fmt.Printf("serving %v scores\n", len(scores))
}

func serve() {
	loadScoresDir()
	handler := cors.Default().Handler(NewRouter())
	log.Fatal(http.ListenAndServe(":8080", handler))
}
