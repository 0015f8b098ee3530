package snapshotfile

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"vacuumworld/internal/app/ports"
)

const Ext = ".json.zst"

type header struct {
	Name    string    `json:"name"`
	Tick    uint64    `json:"tick"`
	SavedAt time.Time `json:"saved_at"`
}

// Store keeps one zstd file per snapshot name. Each file is a JSON header
// line followed by the snapshot payload.
type Store struct {
	Dir string
}

func New(dir string) Store {
	return Store{Dir: dir}
}

func (s Store) path(name string) string {
	return filepath.Join(s.Dir, name+Ext)
}

func (s Store) Save(_ context.Context, record ports.SnapshotRecord) error {
	if strings.ContainsAny(record.Name, `/\`) || record.Name == "" {
		return fmt.Errorf("bad snapshot name %q", record.Name)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, "."+record.Name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp, header{Name: record.Name, Tick: record.Tick, SavedAt: record.SavedAt}, record.Payload); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(record.Name))
}

func (s Store) Load(_ context.Context, name string) (ports.SnapshotRecord, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SnapshotRecord{}, err
	}
	defer f.Close()

	h, payload, err := read(f, true)
	if err != nil {
		return ports.SnapshotRecord{}, fmt.Errorf("read %s: %w", name, err)
	}
	return ports.SnapshotRecord{Name: h.Name, Tick: h.Tick, Payload: payload, SavedAt: h.SavedAt}, nil
}

// List only reads the header line of each file.
func (s Store) List(_ context.Context) ([]ports.SnapshotRecord, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return []ports.SnapshotRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := []ports.SnapshotRecord{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		f, err := os.Open(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			return nil, err
		}
		h, _, err := read(f, false)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		out = append(out, ports.SnapshotRecord{Name: h.Name, Tick: h.Tick, SavedAt: h.SavedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func write(w io.Writer, h header, payload []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)
	hb, err := json.Marshal(h)
	if err != nil {
		_ = enc.Close()
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		_ = enc.Close()
		return err
	}
	if _, err := bw.Write(payload); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func read(r io.Reader, withPayload bool) (header, []byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return header{}, nil, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return header{}, nil, fmt.Errorf("header: %w", err)
	}
	var h header
	if err := json.Unmarshal(line, &h); err != nil {
		return header{}, nil, fmt.Errorf("header: %w", err)
	}
	if !withPayload {
		return h, nil, nil
	}
	payload, err := io.ReadAll(br)
	if err != nil {
		return header{}, nil, err
	}
	return h, payload, nil
}

// ReadPayload returns the snapshot JSON stored at path. Plain .json files
// are returned as is.
func ReadPayload(path string) ([]byte, error) {
	if !strings.HasSuffix(path, Ext) {
		return os.ReadFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	_, payload, err := read(f, true)
	return payload, err
}

// WritePayload writes payload to path, compressed when path ends in Ext.
func WritePayload(path string, tick uint64, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if !strings.HasSuffix(path, Ext) {
		return os.WriteFile(path, payload, 0o644)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), Ext)
	if err := write(f, header{Name: name, Tick: tick, SavedAt: time.Now().UTC()}, payload); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
