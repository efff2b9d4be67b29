package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gridtrace/comtrade/pkg/comtrade"
)

const testCfg = "SMARTSTATION,DEVICE7,1999\n" +
	"3,2A,1D\n" +
	"1,IA,A,,A,1.0,0.0,0.0,-32768,32767,1000,5,S\n" +
	"2,IB,B,,A,1.0,0.0,0.0,-32768,32767,1000,5,S\n" +
	"1,TRIP,,,0\n" +
	"60\n" +
	"1\n" +
	"1000,3\n" +
	"01/01/2017,10:30:00.228000\n" +
	"01/01/2017,10:30:00.722000\n" +
	"ASCII\n" +
	"1\n"

const testDat = "0,0,1.0,2.0,1\n" +
	"1,1000,1.5,2.5,0\n" +
	"2,2000,99999,3.0,1\n"

func TestWatcherLoadsRecording(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var records []*comtrade.Record

	w := New(dir, func(path string, rec *comtrade.Record, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		records = append(records, rec)
		mu.Unlock()
	}, Config{Debounce: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Close()

	// The data file lands first; the config write resets the debounce
	// timer so the pair loads together.
	if err := os.WriteFile(filepath.Join(dir, "fault.dat"), []byte(testDat), 0644); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fault.cfg"), []byte(testCfg), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := len(records)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for the recording to load")
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	rec := records[0]
	mu.Unlock()

	if got := rec.StationName(); got != "SMARTSTATION" {
		t.Errorf("StationName() = %q, want %q", got, "SMARTSTATION")
	}
	if got := rec.SampleCount(); got != 3 {
		t.Errorf("SampleCount() = %d, want 3", got)
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var calls int

	w := New(dir, func(path string, rec *comtrade.Record, err error) {
		mu.Lock()
		calls++
		mu.Unlock()
	}, Config{Debounce: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a recording"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	n := calls
	mu.Unlock()

	if n != 0 {
		t.Errorf("Handler called %d times for an unrelated file, want 0", n)
	}
}

func TestWatcherStartMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent"), func(string, *comtrade.Record, error) {}, Config{})

	if err := w.Start(context.Background()); err == nil {
		w.Close()
		t.Fatal("Start succeeded for a missing directory, want error")
	}
}

func TestRecordingPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "config", in: "rec/fault.cfg", want: "rec/fault.cfg", ok: true},
		{name: "combined", in: "rec/fault.cff", want: "rec/fault.cff", ok: true},
		{name: "data", in: "rec/fault.dat", want: "rec/fault.cfg", ok: true},
		{name: "uppercase data", in: "rec/FAULT.DAT", want: "rec/FAULT.CFG", ok: true},
		{name: "mixed case config", in: "rec/Fault.CfG", want: "rec/Fault.CfG", ok: true},
		{name: "unrelated", in: "rec/notes.txt", want: "", ok: false},
		{name: "no extension", in: "rec/fault", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := recordingPath(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("recordingPath(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
