package main

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Snapshot is the process state shown by --runtime.
type Snapshot struct {
	Taken        time.Time
	GoVersion    string
	GOOS         string
	GOARCH       string
	NumCPU       int
	NumGoroutine int
	Args         []string
	Env          map[string]string
	Build        *debug.BuildInfo
	Mem          runtime.MemStats
}

func takeSnapshot() *Snapshot {
	s := &Snapshot{
		Taken:        time.Now(),
		GoVersion:    runtime.Version(),
		GOOS:         runtime.GOOS,
		GOARCH:       runtime.GOARCH,
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
		Args:         os.Args,
		Env:          map[string]string{},
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			s.Env[k] = v
		}
	}
	s.Build, _ = debug.ReadBuildInfo()
	runtime.ReadMemStats(&s.Mem)
	return s
}
