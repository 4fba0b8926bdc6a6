package cmd

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/broadcast"
	"github.com/rlackeyseattle/vynl-pro/catalog"
	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/db"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves songs, setlists and broadcast sync",
	Long:  `Serves songs, setlists and broadcast sync`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func LoadCatalog() (catalog.Catalog, error) {
	switch backend := constants.GetCatalogBackend(); backend {
	case "file":
		return catalog.Load(constants.GetCatalogPath())
	case "dynamo":
		return db.Connect(
			constants.GetDynamoEndpoint(),
			constants.GetDynamoRegion(),
			constants.GetSongsTable(),
			constants.GetSetlistsTable(),
		)
	default:
		return nil, errors.Errorf("unknown catalog backend %q", backend)
	}
}

type server struct {
	catalog catalog.Catalog
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		respond(w, http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
		return
	}
	log.Printf("Request failed: %v", err)
	respond(w, http.StatusInternalServerError, model.ErrorResponse{Error: "internal error"})
}

func (s server) handleSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.catalog.Songs(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if songs == nil {
		songs = []model.Song{}
	}
	respond(w, http.StatusOK, songs)
}

func (s server) handleSetlists(w http.ResponseWriter, r *http.Request) {
	setlists, err := s.catalog.Setlists(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if setlists == nil {
		setlists = []model.SetlistSummary{}
	}
	respond(w, http.StatusOK, setlists)
}

func (s server) handleSetlist(w http.ResponseWriter, r *http.Request) {
	setlist, err := s.catalog.Setlist(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, setlist)
}

// NewRouter wires the catalog and sync endpoints behind CORS so viewers
// served from elsewhere can poll.
func NewRouter(cat catalog.Catalog, store *broadcast.Store) http.Handler {
	s := server{catalog: cat}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/songs", s.handleSongs).Methods("GET")
	router.HandleFunc("/setlists", s.handleSetlists).Methods("GET")
	router.HandleFunc("/setlists/{id}", s.handleSetlist).Methods("GET")
	broadcast.RegisterRoutes(router, store)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", broadcast.HostTokenHeader},
	}).Handler(router)
}

func serve() {
	cat, err := LoadCatalog()
	if err != nil {
		log.Fatal(err)
	}
	store := broadcast.NewStore(clock.Real{})

	addr := ":" + constants.GetPort()
	log.Printf("Serving on %v", addr)
	log.Fatal(http.ListenAndServe(addr, NewRouter(cat, store)))
}
