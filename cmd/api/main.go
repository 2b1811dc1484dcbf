package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"loanbook/pkg/config"
	"loanbook/pkg/engine"
	"loanbook/pkg/graph"
	"loanbook/pkg/ledger"
	"loanbook/pkg/models"
	"loanbook/pkg/store"
)

// Server wires the ledger and the HTTP surface together.
type Server struct {
	ledger  *ledger.Ledger
	storage store.Storage
	log     *logrus.Logger
}

func NewServer(s store.Storage, log *logrus.Logger) *Server {
	return &Server{
		ledger:  ledger.New(s, log),
		storage: s,
		log:     log,
	}
}

// routes assembles the router: the GraphQL endpoint plus the companion REST
// surface. Both write paths delegate to the same ledger methods.
func (s *Server) routes() (*mux.Router, error) {
	schema, err := graph.NewSchema(s.ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/", s.homeHandler).Methods("GET")
	router.Handle("/graphql", gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	}))
	router.HandleFunc("/api/loans", s.listLoansHandler).Methods("GET")
	router.HandleFunc("/api/loans/{id}", s.getLoanHandler).Methods("GET")
	router.HandleFunc("/api/payments", s.createPaymentHandler).Methods("POST")
	return router, nil
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Welcome to the Loan Application API")
}

func (s *Server) listLoansHandler(w http.ResponseWriter, r *http.Request) {
	views, _, err := s.ledger.GetAllLoans()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

func (s *Server) getLoanHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	loanID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "Invalid loan ID", http.StatusBadRequest)
		return
	}

	view, err := s.ledger.GetLoan(loanID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (s *Server) createPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoanID      string          `json:"loan_id"`
		PaymentDate string          `json:"payment_date"`
		Amount      decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		http.Error(w, "Invalid loan ID", http.StatusBadRequest)
		return
	}
	paymentDate, err := models.ParseDate(req.PaymentDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payment, err := s.ledger.RecordPayment(loanID, paymentDate, req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

// writeError maps ledger and engine failures onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrLoanNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, engine.ErrInvalidAmount), errors.Is(err, engine.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrLoanSettled), errors.Is(err, ledger.ErrExceedsBalance):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.WithError(err).Error("request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// openStorage picks the store implementation from config. A missing JSON
// data file is seeded with the sample data set before opening.
func openStorage(cfg *config.Config) (store.Storage, error) {
	switch cfg.StoreDriver {
	case config.DriverJSONFile:
		if err := store.SeedFileIfMissing(cfg.DataFile); err != nil {
			return nil, err
		}
		return store.NewFileStore(cfg.DataFile)
	default:
		return store.NewSQLiteStore(cfg.SQLitePath)
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	storage, err := openStorage(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize %s store: %v", cfg.StoreDriver, err)
	}
	defer storage.Close()

	server := NewServer(storage, logger)
	router, err := server.routes()
	if err != nil {
		logger.Fatalf("Failed to set up routes: %v", err)
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	handler := handlers.LoggingHandler(logger.Writer(), cors(router))

	logger.Infof("Server starting on :%s", cfg.Port)
	logger.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
