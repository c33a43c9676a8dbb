package tensorio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/katalvlaran/romkit/matrix"
)

const fileExt = ".dat"

// Path returns the file an artifact called name lives in under dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+fileExt)
}

// Open reads and decodes the artifact dir/name.
// Errors: ErrNotFound (with fs.ErrNotExist in the chain) or ErrFormat.
func Open(dir, name string) (*Artifact, error) {
	path := Path(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("tensorio: open %s: %w: %w", path, ErrNotFound, err)
		}

		return nil, fmt.Errorf("tensorio: open %s: %w", path, err)
	}
	a, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("tensorio: decode %s: %w", path, err)
	}

	return a, nil
}

// Import creates a tensor with f and fills it from dir/name.
// The stored kind and shape must match what f creates.
func Import[T matrix.Tensor](f Factory[T], comm Comm, dir, name string, opts ...Option) (T, error) {
	var zero T
	o := gatherOptions(opts...)
	a, err := Open(dir, name)
	if err != nil {
		return zero, err
	}
	if a.List {
		return zero, fmt.Errorf("tensorio: import %s: list artifact, want single: %w", Path(dir, name), ErrFormat)
	}
	t, err := f.Create()
	if err != nil {
		return zero, fmt.Errorf("tensorio: import %s: %w", Path(dir, name), err)
	}
	if err = fill(t, a.Records[0]); err != nil {
		return zero, fmt.Errorf("tensorio: import %s: %w", Path(dir, name), err)
	}
	o.logger.Debug("tensor imported",
		"path", Path(dir, name), "rank", comm.Rank(),
		"kind", a.Records[0].Kind, "compression", a.Records[0].Compression)

	return t, nil
}

// ImportList reads a count-prefixed list artifact; every item is created with f.
// The result preserves the stored order.
func ImportList[T matrix.Tensor](f Factory[T], comm Comm, dir, name string, opts ...Option) ([]T, error) {
	o := gatherOptions(opts...)
	a, err := Open(dir, name)
	if err != nil {
		return nil, err
	}
	if !a.List {
		return nil, fmt.Errorf("tensorio: import %s: single artifact, want list: %w", Path(dir, name), ErrFormat)
	}
	out := make([]T, 0, len(a.Records))
	for i, rec := range a.Records {
		t, err := f.Create()
		if err != nil {
			return nil, fmt.Errorf("tensorio: import %s: %w", Path(dir, name), err)
		}
		if err = fill(t, rec); err != nil {
			return nil, fmt.Errorf("tensorio: import %s item %d: %w", Path(dir, name), i, err)
		}
		out = append(out, t)
	}
	o.logger.Debug("tensor list imported",
		"path", Path(dir, name), "rank", comm.Rank(), "count", len(out))

	return out, nil
}

// Export writes t to dir/name, creating dir as needed. Only rank 0 writes;
// every rank waits on comm.Barrier before returning.
func Export(t matrix.Tensor, comm Comm, dir, name string, opts ...Option) error {
	if isNil(t) {
		return fmt.Errorf("tensorio: export %s: %w", Path(dir, name), matrix.ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	var writeErr error
	if comm.Rank() == 0 {
		data, err := encodeSingle(t, o.compression)
		if err == nil {
			err = writeFile(dir, name, data)
		}
		if err != nil {
			writeErr = fmt.Errorf("tensorio: export %s: %w", Path(dir, name), err)
		} else {
			o.logger.Debug("tensor exported", "path", Path(dir, name), "bytes", len(data))
		}
	}
	if err := comm.Barrier(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("tensorio: export %s: barrier: %w", Path(dir, name), err)
	}

	return writeErr
}

// ExportList writes ts as one count-prefixed artifact. An empty list is valid.
func ExportList[T matrix.Tensor](ts []T, comm Comm, dir, name string, opts ...Option) error {
	for i, t := range ts {
		if isNil(t) {
			return fmt.Errorf("tensorio: export %s item %d: %w", Path(dir, name), i, matrix.ErrNilMatrix)
		}
	}
	o := gatherOptions(opts...)
	var writeErr error
	if comm.Rank() == 0 {
		data, err := encodeList(ts, o.compression)
		if err == nil {
			err = writeFile(dir, name, data)
		}
		if err != nil {
			writeErr = fmt.Errorf("tensorio: export %s: %w", Path(dir, name), err)
		} else {
			o.logger.Debug("tensor list exported", "path", Path(dir, name), "count", len(ts), "bytes", len(data))
		}
	}
	if err := comm.Barrier(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("tensorio: export %s: barrier: %w", Path(dir, name), err)
	}

	return writeErr
}

// writeFile replaces dir/name atomically through a temp file in dir.
func writeFile(dir, name string, data []byte) error {
	target := Path(dir, name)
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(parent, "."+filepath.Base(target)+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), target)
}
