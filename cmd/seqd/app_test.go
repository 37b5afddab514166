package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
)

func testConfig(mutate ...func(*config.Config)) *config.Config {
	cfg := &config.Config{}
	cfg.Name = "seqd"
	cfg.Version = "test"
	cfg.Server.Host = "127.0.0.1"
	cfg.Pipelines.Dirs = []string{"../../definition/testdata/pipelines"}
	for _, m := range mutate {
		m(cfg)
	}
	cfg.ApplyDefaults()
	cfg.Server.Port = 0
	return cfg
}

func waitListening(t *testing.T, a *app) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !a.server.Listening() {
		if time.Now().After(deadline) {
			t.Fatal("server did not start listening")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAppServesPipelines(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "seqd", &buf)

	a, err := newApp(testConfig(), log)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()
	waitListening(t, a)

	base := "http://" + a.server.Addr()

	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	var sh observability.ServiceHealth
	if err := json.NewDecoder(resp.Body).Decode(&sh); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || sh.Status != observability.HealthStatusUp {
		t.Fatalf("unexpected health %d %+v", resp.StatusCode, sh)
	}
	if len(sh.Components) != 2 {
		t.Errorf("expected catalog and server components, got %+v", sh.Components)
	}

	resp, err = http.Post(base+"/v1/pipelines/first-even-squares/run", "application/json", http.NoBody)
	if err != nil {
		t.Fatalf("POST run: %v", err)
	}
	var body struct {
		Data struct {
			Values []float64 `json:"values"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	resp.Body.Close()
	if len(body.Data.Values) != 3 || body.Data.Values[2] != 16 {
		t.Errorf("unexpected values %v", body.Data.Values)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
	if a.server.Listening() {
		t.Error("server still listening after stop")
	}
}

func TestAppRegistersTelemetryComponents(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "seqd", &buf)

	cfg := testConfig()
	cfg.Tracing.Enabled = true
	cfg.Metrics.Enabled = true

	a, err := newApp(cfg, log)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	var names []string
	for _, c := range a.components.All() {
		names = append(names, c.Name())
	}
	want := []string{"tracing", "metrics", "definitions", "http-server"}
	if len(names) != len(want) {
		t.Fatalf("components = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("components = %v, want %v", names, want)
			break
		}
	}
}

func TestAppCachesResultsInRedis(t *testing.T) {
	mini := miniredis.RunT(t)
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "seqd", &buf)

	a, err := newApp(testConfig(func(c *config.Config) {
		c.Redis.Enabled = true
		c.Redis.Addr = mini.Addr()
	}), log)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()
	waitListening(t, a)
	defer func() {
		cancel()
		<-done
	}()

	runOnce := func() bool {
		t.Helper()
		resp, err := http.Post("http://"+a.server.Addr()+"/v1/pipelines/countdown/run", "application/json", http.NoBody)
		if err != nil {
			t.Fatalf("POST run: %v", err)
		}
		defer resp.Body.Close()
		var body struct {
			Data struct {
				Cached bool `json:"cached"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return body.Data.Cached
	}

	if runOnce() {
		t.Fatal("first run must be computed")
	}
	if !runOnce() {
		t.Fatal("second run must come from redis")
	}
	if len(mini.Keys()) != 1 {
		t.Fatalf("expected one cached result, have %v", mini.Keys())
	}
	if ttl := mini.TTL(mini.Keys()[0]); ttl != 300*time.Second {
		t.Errorf("cached result ttl = %v", ttl)
	}
}
