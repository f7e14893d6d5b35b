package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"todopix/internal/api"
	"todopix/internal/mcp"
	"todopix/internal/middleware"
	"todopix/internal/store/memstore"
	"todopix/internal/upload"
)

var version = strconv.FormatInt(time.Now().Unix(), 10)

func main() {
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	// One-time upload directory init; refuse to start without it
	saver, err := upload.New(uploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload directory: %v", err)
	}

	st := memstore.New()
	handlers := api.NewHandlers(st, saver)

	mux := http.NewServeMux()

	// Serve index.html with cache-busting version
	tmpl := template.Must(template.ParseFiles("./static/index.html"))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.FileServer(http.Dir("./static")).ServeHTTP(w, r)
			return
		}
		tmpl.Execute(w, map[string]string{"Version": version})
	})

	mux.HandleFunc("/todos", handlers.TodosHandler)
	mux.HandleFunc("/todos/analyze", handlers.AnalyzeHandler)

	// Serve uploaded photos and their thumbnails
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// MCP endpoint exposing the store as tools
	mux.Handle("/mcp", mcp.NewServer(st))

	handler := middleware.Logging(mux)

	fmt.Println("Server started at " + httpAddr)
	log.Fatal(http.ListenAndServe(httpAddr, handler))
}
