package cli_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/portalgun/internal/cli"
	"github.com/rshade/portalgun/internal/config"
)

// catalogServer serves a small catalog: five characters over two pages, two
// locations and one episode. Paths listed in failing answer with their code.
type catalogServer struct {
	srv     *httptest.Server
	failing map[string]int
	hits    atomic.Int32
}

func newCatalogServer(t *testing.T) *catalogServer {
	t.Helper()
	s := &catalogServer{failing: map[string]int{}}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *catalogServer) serve(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)
	if code, ok := s.failing[r.URL.Path]; ok {
		w.WriteHeader(code)
		return
	}

	var body string
	switch r.URL.RequestURI() {
	case "/character":
		body = s.page(`[
			{"id":1,"name":"Rick Sanchez","status":"Alive","species":"Human","gender":"Male",
			 "origin":{"name":"Earth (C-137)"},"location":{"name":"Citadel of Ricks"},
			 "episode":["e1","e2","e3"],"created":"2017-11-04T18:48:46.250Z"},
			{"id":2,"name":"Morty Smith","status":"Alive","species":"Human","gender":"Male",
			 "origin":{"name":"unknown"},"location":{"name":"Citadel of Ricks"},
			 "episode":["e1","e2"],"created":"2017-11-04T18:50:21.651Z"},
			{"id":3,"name":"Summer Smith","status":"Alive","species":"Human","gender":"Female",
			 "origin":{"name":"Earth (Replacement Dimension)"},"location":{"name":"Earth (Replacement Dimension)"},
			 "episode":["e6"],"created":"2017-11-04T19:09:56.428Z"}]`, "/character?page=2")
	case "/character?page=2":
		body = s.page(`[
			{"id":4,"name":"Beth Smith","status":"Alive","species":"Human","gender":"Female",
			 "episode":["e6","e7"],"created":"2017-11-04T19:22:43.665Z"},
			{"id":5,"name":"Abadango Cluster Princess","status":"Dead","species":"Alien","gender":"Female",
			 "episode":["e27"],"created":"2017-11-04T19:50:28.250Z"}]`, "")
	case "/location":
		body = s.page(`[
			{"id":1,"name":"Earth (C-137)","type":"Planet","dimension":"Dimension C-137",
			 "residents":["c1","c2"],"created":"2017-11-10T12:42:04.162Z"},
			{"id":2,"name":"Abadango","type":"Cluster","dimension":"unknown",
			 "residents":["c6"],"created":"2017-11-10T13:06:38.182Z"}]`, "")
	case "/episode":
		body = s.page(`[
			{"id":1,"name":"Pilot","air_date":"December 2, 2013","episode":"S01E01",
			 "characters":["c1","c2"],"created":"2017-11-10T12:56:33.798Z"}]`, "")
	default:
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (s *catalogServer) page(results, nextURI string) string {
	next := "null"
	if nextURI != "" {
		next = fmt.Sprintf("%q", s.srv.URL+nextURI)
	}
	return fmt.Sprintf(`{"info":{"count":0,"pages":0,"next":%s,"prev":null},"results":%s}`, next, results)
}

// isolate points the configuration at a temp home and clears every override
// that could leak in from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, key := range []string{
		config.EnvProjectDir, config.EnvBaseURL, config.EnvLogLevel,
		config.EnvLogFormat, config.EnvCacheEnabled, config.EnvCacheTTL,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvLogLevel, "error")
	config.ResetGlobalConfigForTest()
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// execute runs the root command with args against a fresh configuration and
// returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetGlobalConfigForTest()

	root := cli.NewRootCmd("test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

// nonEmptyLines splits s into lines, dropping blank ones.
func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func requireContainsAll(t *testing.T, s string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		require.Contains(t, s, p)
	}
}
