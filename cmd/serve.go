package cmd

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/scorelayout/accidental"
	"github.com/jsphweid/scorelayout/beam"
	"github.com/jsphweid/scorelayout/config"
	"github.com/jsphweid/scorelayout/constants"
	"github.com/jsphweid/scorelayout/measure"
	"github.com/jsphweid/scorelayout/memo"
	"github.com/jsphweid/scorelayout/model"
	"github.com/jsphweid/scorelayout/placement"
	"github.com/jsphweid/scorelayout/score"
	"github.com/jsphweid/scorelayout/system"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (default $SCORELAYOUT_PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves layouts over HTTP",
	Long:  `Serves measure, system, beam, accidental, placement and score layouts as JSON over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port == "" {
			port = constants.GetPort()
		}
		log.WithField("port", port).Info("serving")
		return http.ListenAndServe(":"+port, NewServer(cfg).Router())
	},
}

// Server answers layout requests with one config. Measure layouts without
// forced positions are memoised.
type Server struct {
	cfg      config.Config
	measures *memo.Table[model.MeasureLayout]
}

func NewServer(cfg config.Config) *Server {
	return &Server{cfg: cfg, measures: memo.NewTable[model.MeasureLayout]()}
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/layout/measure", s.HandleMeasureLayout).Methods("POST")
	router.HandleFunc("/layout/system", s.HandleSystemLayout).Methods("POST")
	router.HandleFunc("/layout/score", s.HandleScoreLayout).Methods("POST")
	router.HandleFunc("/beams", s.HandleBeams).Methods("POST")
	router.HandleFunc("/accidentals", s.HandleAccidentals).Methods("POST")
	router.HandleFunc("/placement", s.HandlePlacement).Methods("POST")
	router.HandleFunc("/config", s.HandleConfig).Methods("GET")
	return cors.Default().Handler(router)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithError(err).WithField("path", r.URL.Path).Warn("bad request body")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(model.ErrorResponse{Error: "could not parse request body: " + err.Error()})
		return false
	}
	return true
}

func respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("could not write response")
	}
}

func (s *Server) HandleMeasureLayout(w http.ResponseWriter, r *http.Request) {
	var input model.MeasureLayoutRequestBody
	if !decode(w, r, &input) {
		return
	}
	opts := measure.Options{
		TotalQuants:     input.TotalQuants,
		Clef:            input.Clef,
		IsPickup:        input.IsPickup,
		ForcedPositions: input.ForcedPositions,
	}
	compute := func() model.MeasureLayout { return measure.Layout(input.Events, opts, s.cfg) }

	if len(input.ForcedPositions) > 0 {
		respond(w, compute())
		return
	}
	key := memo.Key(input.Events, input.Clef, "", input.IsPickup, input.TotalQuants)
	respond(w, s.measures.GetOrCompute(key, compute))
}

func (s *Server) HandleSystemLayout(w http.ResponseWriter, r *http.Request) {
	var input model.SystemLayoutRequestBody
	if !decode(w, r, &input) {
		return
	}
	staves := make([]system.StaffMeasure, len(input.Measures))
	for i, m := range input.Measures {
		staves[i] = system.StaffMeasure{Measure: m.Measure, Clef: m.Clef}
	}
	layouts, sys := system.LayoutMeasures(staves, s.cfg)
	respond(w, model.SystemLayoutResponse{System: sys, Measures: layouts})
}

func (s *Server) HandleScoreLayout(w http.ResponseWriter, r *http.Request) {
	var input model.Score
	if !decode(w, r, &input) {
		return
	}
	respond(w, score.Layout(input, s.cfg))
}

func (s *Server) HandleBeams(w http.ResponseWriter, r *http.Request) {
	var input model.BeamsRequestBody
	if !decode(w, r, &input) {
		return
	}
	positions := input.EventPositions
	if positions == nil {
		positions = measure.Layout(input.Events, measure.Options{Clef: input.Clef}, s.cfg).EventPositions
	}
	res := beam.Groups(input.Events, positions, input.Clef, s.cfg)
	if res == nil {
		res = []model.BeamGroup{}
	}
	respond(w, res)
}

func (s *Server) HandleAccidentals(w http.ResponseWriter, r *http.Request) {
	var input model.AccidentalsRequestBody
	if !decode(w, r, &input) {
		return
	}
	respond(w, accidental.Calculate(input.Events, input.KeySignature))
}

func (s *Server) HandlePlacement(w http.ResponseWriter, r *http.Request) {
	var input model.PlacementRequestBody
	if !decode(w, r, &input) {
		return
	}
	respond(w, placement.Analyze(input.Events, input.IntendedQuant, s.cfg))
}

func (s *Server) HandleConfig(w http.ResponseWriter, r *http.Request) {
	respond(w, s.cfg)
}
