package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"time"

	"github.com/djherbis/times"

	//lint:ignore ST1001 ignore dot imports warning
	. "github.com/poppolopoppo/sqlite3src/internal/base"
)

var LogUFS = NewLogCategory("UFS")

/***************************************
 * Path to string
 ***************************************/

func CleanPath(in string) string {
	in = filepath.Clean(in)
	if cleaned, err := filepath.Abs(in); err == nil {
		in = cleaned
	} else {
		LogPanicErr(LogUFS, err)
	}
	return in
}

func JoinPath(in string, args ...string) string {
	if len(args) == 0 {
		return in
	}
	return filepath.Join(append([]string{in}, args...)...)
}

/***************************************
 * Directory
 ***************************************/

type Directory struct {
	Path string
}

func MakeDirectory(str string) Directory {
	return Directory{Path: CleanPath(str)}
}
func (d Directory) Valid() bool { return len(d.Path) > 0 }
func (d Directory) Basename() string {
	return filepath.Base(d.Path)
}
func (d Directory) Folder(name ...string) Directory {
	return Directory{Path: JoinPath(d.String(), name...)}
}
func (d Directory) File(name ...string) Filename {
	return Filename{
		Dirname:  d.Folder(name[:len(name)-1]...),
		Basename: name[len(name)-1]}
}
func (d Directory) Equals(o Directory) bool {
	return d == o
}
func (d Directory) String() string {
	return d.Path
}
func (d Directory) Exists() bool {
	st, err := os.Stat(d.Path)
	return err == nil && st.IsDir()
}

/***************************************
 * Filename
 ***************************************/

type Filename struct {
	Dirname  Directory
	Basename string
}

func MakeFilename(str string) Filename {
	str = CleanPath(str)
	dirname, basename := filepath.Split(str)
	if len(dirname) > 1 {
		// trim ending path separator
		dirname = dirname[:len(dirname)-1]
	}
	return Filename{
		Basename: basename,
		Dirname:  Directory{Path: dirname},
	}
}

func (f Filename) Valid() bool { return len(f.Basename) > 0 }
func (f Filename) Ext() string {
	return path.Ext(f.Basename)
}
func (f Filename) Equals(o Filename) bool {
	return (f.Basename == o.Basename && f.Dirname.Equals(o.Dirname))
}
func (f Filename) String() string {
	if len(f.Dirname.Path) > 0 {
		return JoinPath(f.Dirname.Path, f.Basename)
	} else {
		return f.Basename
	}
}
func (f Filename) Info() (os.FileInfo, error) {
	return os.Stat(f.String())
}
func (f Filename) Exists() bool {
	st, err := f.Info()
	return err == nil && st.Mode().IsRegular()
}

/***************************************
 * flag.Value interface
 ***************************************/

func (d *Directory) Set(str string) error {
	if str != "" {
		if !filepath.IsAbs(str) {
			str = filepath.Join(UFS.Root.String(), str)
		}
		*d = MakeDirectory(str)
	} else {
		*d = Directory{}
	}
	return nil
}
func (f *Filename) Set(str string) error {
	if str != "" {
		if !filepath.IsAbs(str) {
			str = filepath.Join(UFS.Root.String(), str)
		}
		*f = MakeFilename(str)
	} else {
		*f = Filename{}
	}
	return nil
}

func (x Filename) MarshalText() ([]byte, error) {
	return UnsafeBytesFromString(x.String()), nil
}
func (x *Filename) UnmarshalText(data []byte) error {
	return x.Set(UnsafeStringFromBytes(data))
}
func (x Directory) MarshalText() ([]byte, error) {
	return UnsafeBytesFromString(x.String()), nil
}
func (x *Directory) UnmarshalText(data []byte) error {
	return x.Set(UnsafeStringFromBytes(data))
}

/***************************************
 * File times
 ***************************************/

func GetModificationTime(stat os.FileInfo) time.Time {
	return times.Get(stat).ModTime()
}

/***************************************
 * FileSet
 ***************************************/

type FileSet []Filename

func NewFileSet(x ...Filename) FileSet {
	return FileSet(x)
}
func (list FileSet) Len() int          { return len(list) }
func (list FileSet) At(i int) Filename { return list[i] }

// NewestModTime returns the most recent modification time among the files,
// failing if any of them can not be stat'ed.
func (list FileSet) NewestModTime() (result time.Time, err error) {
	for _, it := range list {
		var st os.FileInfo
		if st, err = it.Info(); err != nil {
			return
		}
		if mtime := GetModificationTime(st); mtime.After(result) {
			result = mtime
		}
	}
	return
}

/***************************************
 * Frontend
 ***************************************/

var UFS UFSFrontEnd = make_ufs_frontend()

type UFSFrontEnd struct {
	Root Directory
}

func (ufs *UFSFrontEnd) MTime(src Filename) (time.Time, error) {
	st, err := src.Info()
	if err != nil {
		return time.Time{}, err
	}
	return GetModificationTime(st), nil
}
func (ufs *UFSFrontEnd) MkdirEx(dst Directory) error {
	path := dst.String()
	if st, err := os.Stat(path); st != nil && (err == nil || os.IsExist(err)) {
		if !st.IsDir() {
			return fmt.Errorf("ufs: %q already exist, but is not a directory", dst)
		}
	} else {
		LogDebug(LogUFS, "mkdir %v", dst)
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return fmt.Errorf("ufs: mkdir %q got error %v", dst, err)
		}
	}
	return nil
}
func (ufs *UFSFrontEnd) CreateFile(dst Filename, write func(*os.File) error) (err error) {
	if err = ufs.MkdirEx(dst.Dirname); err != nil {
		return err
	}
	LogDebug(LogUFS, "create '%v'", dst)

	var outp *os.File
	if outp, err = os.Create(dst.String()); err == nil {
		defer func() {
			closeErr := outp.Close()
			if err == nil {
				err = closeErr
			}
		}()
		if err = write(outp); err == nil {
			return nil
		}
	}
	LogWarning(LogUFS, "CreateFile: caught %v while trying to create %v", err, dst)
	return err
}
func (ufs *UFSFrontEnd) Create(dst Filename, write func(io.Writer) error) error {
	return ufs.CreateFile(dst, func(f *os.File) error {
		return write(f)
	})
}
func (ufs *UFSFrontEnd) CreateBuffered(dst Filename, write func(io.Writer) error) error {
	return ufs.Create(dst, func(w io.Writer) error {
		buffered := bufio.NewWriter(w)
		if err := write(buffered); err != nil {
			return err
		}
		return buffered.Flush()
	})
}
func (ufs *UFSFrontEnd) OpenFile(src Filename, read func(*os.File) error) (err error) {
	LogDebug(LogUFS, "open '%v'", src)

	var input *os.File
	if input, err = os.Open(src.String()); err == nil {
		defer func() {
			closeErr := input.Close()
			if err == nil {
				err = closeErr
			}
		}()
		if err = read(input); err == nil {
			return nil
		}
	}
	LogVerbose(LogUFS, "OpenFile: %v", err)
	return err
}
func (ufs *UFSFrontEnd) Open(src Filename, read func(io.Reader) error) error {
	return ufs.OpenFile(src, func(f *os.File) error {
		return read(f)
	})
}
func (ufs *UFSFrontEnd) ReadAll(src Filename) (raw []byte, err error) {
	err = ufs.OpenFile(src, func(f *os.File) error {
		var er error
		raw, er = io.ReadAll(f)
		return er
	})
	return
}

func (ufs *UFSFrontEnd) GetWorkingDir() (Directory, error) {
	if wd, err := os.Getwd(); err == nil {
		return MakeDirectory(wd), nil
	} else {
		return Directory{}, err
	}
}
func (ufs *UFSFrontEnd) GetCallerFile(skip int) (Filename, error) {
	_, filename, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return Filename{}, errors.New("unable to get the current filename")
	}
	return MakeFilename(filename), nil
}
func (ufs *UFSFrontEnd) GetCallerFolder(skip int) (Directory, error) {
	if filename, err := ufs.GetCallerFile(skip + 1); err == nil {
		return filename.Dirname, nil
	} else {
		return Directory{}, err
	}
}

func make_ufs_frontend() (ufs UFSFrontEnd) {
	var err error
	ufs.Root, err = ufs.GetWorkingDir()
	LogPanicIfFailed(LogUFS, err)
	return ufs
}
