package slide

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

// Rasterizer flattens a presentation file to a PNG image by converting it to
// PDF with a headless LibreOffice and rendering the single page with pdftoppm
type Rasterizer struct {
	logger       zerolog.Logger
	sofficePath  string
	pdftoppmPath string
}

// NewRasterizer locates the external converter binaries
func NewRasterizer(logger zerolog.Logger) (*Rasterizer, error) {
	sofficePath, err := findSoffice()
	if err != nil {
		return nil, err
	}

	pdftoppmPath, err := exec.LookPath("pdftoppm")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm not found in PATH (install poppler-utils): %w", err)
	}

	return &Rasterizer{
		logger:       logger.With().Str("component", "rasterizer").Logger(),
		sofficePath:  sofficePath,
		pdftoppmPath: pdftoppmPath,
	}, nil
}

// Rasterize converts pptxPath to a PNG in the same directory and returns the
// PNG path. The intermediate PDF is deleted once consumed.
func (r *Rasterizer) Rasterize(ctx context.Context, pptxPath string) (string, error) {
	outDir := filepath.Dir(pptxPath)
	stem := strings.TrimSuffix(filepath.Base(pptxPath), filepath.Ext(pptxPath))
	pdfPath := filepath.Join(outDir, stem+".pdf")
	pngPath := filepath.Join(outDir, stem+".png")

	// Convert PPTX to PDF using LibreOffice
	args := []string{"--headless", "--convert-to", "pdf", pptxPath, "--outdir", outDir}
	r.logger.Debug().Str("cmd", r.sofficePath).Strs("args", args).Msg("converting slide to pdf")

	cmd := exec.CommandContext(ctx, r.sofficePath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("soffice conversion failed: %w\nOutput: %s", err, string(output))
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("soffice did not produce %s: %w", pdfPath, err)
	}

	// Convert the single PDF page to PNG using pdftoppm (part of poppler-utils)
	args = []string{"-png", "-r", "150", "-singlefile", pdfPath, filepath.Join(outDir, stem)}
	r.logger.Debug().Str("cmd", r.pdftoppmPath).Strs("args", args).Msg("rasterizing pdf to png")

	cmd = exec.CommandContext(ctx, r.pdftoppmPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w\nOutput: %s", err, string(output))
	}

	if err := os.Remove(pdfPath); err != nil {
		return "", fmt.Errorf("failed to remove intermediate pdf: %w", err)
	}

	return pngPath, nil
}

// findSoffice resolves the LibreOffice binary: PATH first, then the
// well-known install locations per OS
func findSoffice() (string, error) {
	for _, name := range []string{"soffice", "libreoffice"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"/Applications/LibreOffice.app/Contents/MacOS/soffice"}
	case "windows":
		candidates = []string{
			`C:\Program Files\LibreOffice\program\soffice.exe`,
			`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
		}
	default:
		candidates = []string{"/usr/bin/soffice", "/usr/local/bin/soffice", "/opt/libreoffice/program/soffice"}
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("LibreOffice (soffice) not found in PATH or standard locations")
}
