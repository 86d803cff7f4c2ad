package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Converters are the LibreOffice binaries tried, in order.
var Converters = []string{"soffice", "libreoffice"}

// ConverterPath returns the first available LibreOffice binary.
func ConverterPath() (string, error) {
	for _, name := range Converters {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("pdf export requires LibreOffice. Install with:\n  macOS:  brew install --cask libreoffice\n  Linux:  apt install libreoffice-impress")
}

// ToPDF converts PPTX bytes to PDF using headless LibreOffice.
func ToPDF(ctx context.Context, pptx []byte) ([]byte, error) {
	bin, err := ConverterPath()
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "gradslides-pdf-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(in, pptx, 0o644); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, "--headless", "--convert-to", "pdf", "--outdir", dir, in)
	// Each conversion gets its own LibreOffice profile.
	cmd.Env = append(os.Environ(), "HOME="+dir)

	var errBuf bytes.Buffer
	cmd.Stdout = &errBuf
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", filepath.Base(bin), err, errBuf.String())
	}

	out, err := os.ReadFile(filepath.Join(dir, "deck.pdf"))
	if err != nil {
		return nil, fmt.Errorf("%s produced no pdf: %s", filepath.Base(bin), errBuf.String())
	}
	return out, nil
}
