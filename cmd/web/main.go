package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/cosmicdefender/internal/config"
	"github.com/tomz197/cosmicdefender/internal/highscore"
)

const (
	appName     = "cosmicdefender"
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// recorder reads the current high score record.
type recorder interface {
	Record() (highscore.Record, error)
}

type pageData struct {
	SSHHost   string
	SSHPort   string
	HighScore int
	Achieved  string
}

// newHandler serves the landing page with the SSH command and the high score.
func newHandler(logger *log.Logger, sshHost, sshPort string, scores recorder) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		data := pageData{SSHHost: sshHost, SSHPort: sshPort}
		rec, err := scores.Record()
		if err != nil {
			logger.Warn("failed to read high score", "err", err)
		}
		data.HighScore = rec.Score
		if !rec.Achieved.IsZero() {
			data.Achieved = rec.Achieved.Format(time.DateOnly)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("failed to render page", "err", err)
		}
	})
	return mux
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("failed to load .env", "err", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "web", ReportTimestamp: true})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "")

	store, err := highscore.Open(appName)
	if err != nil {
		logger.Warn("high score unavailable", "err", err)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(logger, sshHost, sshPort, store),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
