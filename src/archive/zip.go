package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	pg "compose-backup/src/util/progress"
)

// progressThreshold is the file size above which byte progress is reported.
const progressThreshold = 1 << 20

// ZipDir archives the full contents of srcDir into a zip file at destZip.
// Entry names are forward-slash paths relative to srcDir. When progressOut
// is non-nil, large files report byte progress while being copied.
func ZipDir(srcDir, destZip string, progressOut io.Writer) (err error) {
	absDest, err := filepath.Abs(destZip)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", destZip, err)
	}
	out, err := os.Create(destZip)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", destZip, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		abs, aerr := filepath.Abs(path)
		if aerr == nil && abs == absDest {
			// Never archive the output zip into itself.
			return nil
		}
		rel, rerr := filepath.Rel(srcDir, path)
		if rerr != nil {
			return rerr
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)
		if d.IsDir() {
			if _, herr := zw.Create(name + "/"); herr != nil {
				return herr
			}
			return nil
		}
		if !d.Type().IsRegular() {
			// Sockets, devices, and dangling symlinks have no useful zip
			// representation for this tool.
			return nil
		}
		return addFile(zw, path, name, progressOut)
	})
	if walkErr != nil {
		zw.Close()
		return fmt.Errorf("archive %s: %w", srcDir, walkErr)
	}
	if cerr := zw.Close(); cerr != nil {
		return fmt.Errorf("finalize archive %s: %w", destZip, cerr)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string, progressOut io.Writer) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(fi)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var r io.Reader = f
	if progressOut != nil && fi.Size() >= progressThreshold {
		label := "zip " + lastSegment(name)
		r = pg.NewReader(f, fi.Size(), label, progressOut)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	return nil
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
