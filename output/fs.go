package output

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"

	"github.com/golang/glog"

	"github.com/ezrec/twopass/config"
	"github.com/ezrec/twopass/source"
)

// CreateFS is a file system that listings can be written to.
type CreateFS interface {
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Mkdir creates a directory, and any missing parents.
	Mkdir(name string, filemode fs.FileMode) (err error)
}

// DirFS writes files under a host directory.
type DirFS string

// Create creates name under the directory.
func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
		return
	}
	file, err = os.Create(filepath.Join(string(dir), filepath.FromSlash(name)))
	return
}

// Mkdir creates name under the directory.
func (dir DirFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrInvalid}
		return
	}
	err = os.MkdirAll(filepath.Join(string(dir), filepath.FromSlash(name)), filemode)
	return
}

// MemFS keeps created files in memory. It is safe for concurrent use.
type MemFS struct {
	mutex sync.Mutex
	files map[string]*memFile
}

type memFile struct {
	bytes.Buffer
	closed bool
}

func (mf *memFile) Close() error {
	mf.closed = true
	return nil
}

// Create creates or truncates name.
func (mfs *MemFS) Create(name string) (file io.WriteCloser, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
		return
	}

	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()

	if mfs.files == nil {
		mfs.files = make(map[string]*memFile)
	}
	mf := &memFile{}
	mfs.files[name] = mf
	file = mf
	return
}

// Mkdir is a no-op, directories are implied by file names.
func (mfs *MemFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrInvalid}
	}
	return
}

// ReadFile returns the content of a closed file.
func (mfs *MemFS) ReadFile(name string) (data []byte, err error) {
	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()

	mf, ok := mfs.files[name]
	if !ok || !mf.closed {
		err = &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
		return
	}
	data = slices.Clone(mf.Bytes())
	return
}

// Names lists the created files, sorted.
func (mfs *MemFS) Names() (names []string) {
	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()

	for name := range mfs.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return
}

func writeFile(out CreateFS, name string, write func(io.Writer) error) (err error) {
	file, err := out.Create(name)
	if err != nil {
		return
	}

	err = write(file)
	cerr := file.Close()
	if err == nil {
		err = cerr
	}

	if err == nil {
		glog.V(1).Infof("%v: written", name)
	}
	return
}

func mkdirFor(out CreateFS, stem string) (err error) {
	dir := path.Dir(stem)
	if dir != "." {
		err = out.Mkdir(dir, 0o755)
	}
	return
}

// Emit writes the listings of a successfully assembled unit. The object
// listing is always written; the entries and externals listings only
// when they are not empty.
func Emit(out CreateFS, stem string, obj *Object, cfg config.Config) (err error) {
	err = mkdirFor(out, stem)
	if err != nil {
		return
	}

	err = writeFile(out, stem+cfg.ObjectSuffix, obj.WriteObject)
	if err != nil {
		return
	}

	if len(obj.Entries) > 0 {
		err = writeFile(out, stem+cfg.EntriesSuffix, obj.WriteEntries)
		if err != nil {
			return
		}
	}

	if len(obj.Externals) > 0 {
		err = writeFile(out, stem+cfg.ExternalsSuffix, obj.WriteExternals)
		if err != nil {
			return
		}
	}

	return
}

// EmitExpanded writes the macro expanded source of a unit.
func EmitExpanded(out CreateFS, stem string, lines []source.Line, cfg config.Config) (err error) {
	err = mkdirFor(out, stem)
	if err != nil {
		return
	}

	err = writeFile(out, stem+cfg.ExpandedSuffix, func(w io.Writer) error {
		return WriteExpanded(w, lines)
	})
	return
}
