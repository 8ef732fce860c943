// Package server serves a random image from an asset directory, a viewer page
// that embeds it, and a QR code pointing back at the viewer.
package server

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/happy-scan/happy-scan/internal/assets"
	"github.com/happy-scan/happy-scan/internal/qr"
)

//go:embed pages.html.template
var pagesTemplate string

const cacheTokenParameter = "cache_token"

type Options struct {
	Title string

	// TrustProxy makes X-Forwarded-Proto and X-Forwarded-Host override the
	// connection scheme and Host header when building the QR payload.
	TrustProxy bool
}

type Server struct {
	templates *template.Template
	assets    assets.Source
	qr        qr.Generator
	metrics   *metrics
	options   Options

	now  func() time.Time
	intn func(n int) int
}

func New(source assets.Source, generator qr.Generator, options Options) *Server {
	if options.Title == "" {
		options.Title = "Happy Scan"
	}
	server := &Server{
		assets:  source,
		qr:      generator,
		metrics: newMetrics(),
		options: options,
		now:     time.Now,
		intn:    rand.Intn,
	}
	server.templates = template.Must(template.New("").Funcs(server.templateFunctions()).Parse(pagesTemplate))
	return server
}

// Handler returns the routes instrumented with the request counter.
func (server *Server) Handler() http.Handler {
	return promhttp.InstrumentHandlerCounter(server.metrics.requests, server.Routes())
}

func (server *Server) Routes() *httprouter.Router {
	mux := httprouter.New()
	mux.GET("/", server.index)
	mux.GET("/image", server.image)
	mux.GET("/qr", server.qrCode)
	mux.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(server.metrics.registry, promhttp.HandlerOpts{}))
	mux.NotFound = http.HandlerFunc(server.notFound)
	return mux
}

func (server *Server) templateFunctions() template.FuncMap {
	return template.FuncMap{
		"execute": server.execute,
	}
}

func (server *Server) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	err := server.templates.ExecuteTemplate(&buf, name, data)
	return template.HTML(buf.String()), err
}

type ViewerPage struct {
	ImageURL string
}

type QRPage struct {
	Target  string
	DataURI template.URL
}

func (server *Server) index(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	token := strconv.FormatInt(server.now().UnixMilli(), 10)
	server.writePage(res, req, "viewer", http.StatusOK, ViewerPage{
		ImageURL: "/image?" + url.Values{cacheTokenParameter: {token}}.Encode(),
	})
}

func (server *Server) image(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	names, err := server.assets.List(req.Context())
	if err != nil {
		server.writeError(res, classify(err, assets.ErrSourceUnavailable))
		return
	}
	name, err := assets.Pick(names, server.intn)
	if err != nil {
		server.writeError(res, err)
		return
	}
	f, err := server.assets.Open(name)
	if err != nil {
		server.writeError(res, classify(err, assets.ErrReadFailure))
		return
	}
	defer closeAndIgnoreError(f)

	header := res.Header()
	header.Set("content-type", assets.ContentType(name))
	header.Set("cache-control", "no-store")
	if info, err := f.Stat(); err == nil {
		header.Set("content-length", strconv.FormatInt(info.Size(), 10))
	}
	res.WriteHeader(http.StatusOK)
	if _, err := io.Copy(res, f); err != nil {
		// headers are already written; the client most likely went away
		log.Printf("failed to stream %s: %v", name, err)
		server.metrics.failures.WithLabelValues(failureKind(assets.ErrReadFailure)).Inc()
		return
	}
	server.metrics.assetsServed.Inc()
}

func (server *Server) qrCode(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	target := server.baseURL(req)
	uri, err := server.qr.DataURI(target)
	if err != nil {
		server.writeError(res, classify(err, qr.ErrGeneration))
		return
	}
	server.metrics.qrGenerated.Inc()
	server.writePage(res, req, "qr", http.StatusOK, QRPage{
		Target:  target,
		DataURI: uri,
	})
}

func (server *Server) notFound(res http.ResponseWriter, req *http.Request) {
	server.writeError(res, StatusError{
		Status: http.StatusNotFound,
		Err:    fmt.Errorf("no page at %s", req.URL.Path),
	})
}

// baseURL is the externally reachable root of this server as seen by the
// client that made req.
func (server *Server) baseURL(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	host := req.Host
	if server.options.TrustProxy {
		if proto := firstHeaderValue(req.Header.Get("X-Forwarded-Proto")); proto != "" {
			scheme = strings.ToLower(proto)
		}
		if forwarded := firstHeaderValue(req.Header.Get("X-Forwarded-Host")); forwarded != "" {
			host = forwarded
		}
	}
	u := url.URL{Scheme: scheme, Host: host, Path: "/"}
	return u.String()
}

func firstHeaderValue(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return strings.TrimSpace(first)
}

func (server *Server) writePage(res http.ResponseWriter, _ *http.Request, name string, status int, data any) {
	type PageData struct {
		Title    string
		PageName string
		Data     any
	}

	var buf bytes.Buffer
	if err := server.templates.ExecuteTemplate(&buf, "page", PageData{
		Title:    server.options.Title,
		PageName: name,
		Data:     data,
	}); err != nil {
		log.Println(err)
		http.Error(res, "failed to write page", http.StatusInternalServerError)
		return
	}

	res.Header().Set("content-type", "text/html; charset=utf-8")
	res.WriteHeader(status)
	_, _ = res.Write(buf.Bytes())
}

type StatusError struct {
	Status int
	Err    error
}

func (err StatusError) Error() string { return err.Err.Error() }

func (err StatusError) Unwrap() error { return err.Err }

// writeError logs err and answers with a short plain text message. Asset and
// QR failures are all reported as 500.
func (server *Server) writeError(res http.ResponseWriter, err error) {
	log.Println(err)
	server.metrics.failures.WithLabelValues(failureKind(err)).Inc()

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var se StatusError
	switch {
	case errors.As(err, &se):
		status = se.Status
		message = se.Error()
	case errors.Is(err, assets.ErrNoAssets):
		message = "No images found"
	case errors.Is(err, assets.ErrSourceUnavailable), errors.Is(err, assets.ErrReadFailure):
		message = "Error loading images"
	case errors.Is(err, qr.ErrGeneration):
		message = "Error generating QR code"
	}
	http.Error(res, message, status)
}

// classify wraps err with kind unless err already carries kind.
func classify(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

func closeAndIgnoreError(c io.Closer) {
	_ = c.Close()
}
