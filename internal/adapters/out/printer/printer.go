// internal/adapters/out/printer/printer.go

// Package printer drives the native receipt printers of the restaurant
// terminals: discovery via CUPS (lpstat) or PowerShell, silent printing of
// rendered receipts through lp.
package printer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

var ErrNoPrinter = errors.New("printer: no printer available")

// Info describes one available printer.
type Info struct {
	Name        string `json:"name"`
	IsDefault   bool   `json:"isDefault"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Options controls a print job.
type Options struct {
	// Printer is the target name; empty uses the system default.
	Printer string
	// Copies below 1 means 1.
	Copies int
	// PaperWidthMM selects the thermal media size; 80 and 58 are mapped to
	// CUPS custom media, anything else is left to the driver.
	PaperWidthMM int
}

// Result reports the outcome of a print job.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	JobID   string `json:"jobId,omitempty"`
}

// List returns the available printers.
func List() ([]Info, error) {
	if runtime.GOOS == "windows" {
		return listWindows()
	}
	return listUnix()
}

// Print writes text to a temp file and prints it silently.
func Print(text string, opts Options) (Result, error) {
	if runtime.GOOS == "windows" {
		return printWindows(text, opts)
	}
	return printUnix(text, opts)
}

// ----------------------------
// unix (CUPS)
// ----------------------------

func listUnix() ([]Info, error) {
	// default printer first: "system default destination: Name"
	defaultName := ""
	if out, err := exec.Command("lpstat", "-d").Output(); err == nil {
		if _, after, ok := strings.Cut(string(out), ":"); ok {
			defaultName = strings.TrimSpace(after)
		}
	}

	out, err := exec.Command("lpstat", "-p").Output()
	if err != nil {
		return nil, fmt.Errorf("printer: list printers: %w", err)
	}

	var printers []Info
	for _, line := range strings.Split(string(out), "\n") {
		// lines look like: "printer Name is idle.  enabled since ..."
		if !strings.HasPrefix(line, "printer ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := fields[1]
		status := ""
		if strings.Contains(line, "idle") {
			status = "idle"
		} else if strings.Contains(line, "printing") {
			status = "printing"
		}
		printers = append(printers, Info{
			Name:      name,
			IsDefault: name == defaultName,
			Status:    status,
		})
	}
	return printers, nil
}

func printUnix(text string, opts Options) (Result, error) {
	f, err := os.CreateTemp("", "tableside-receipt-*.txt")
	if err != nil {
		return Result{}, fmt.Errorf("printer: create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return Result{}, fmt.Errorf("printer: write temp file: %w", err)
	}
	f.Close()

	var args []string
	if p := strings.TrimSpace(opts.Printer); p != "" {
		args = append(args, "-d", p)
	}
	if opts.Copies > 1 {
		args = append(args, "-n", strconv.Itoa(opts.Copies))
	}
	switch opts.PaperWidthMM {
	case 80:
		args = append(args, "-o", "media=Custom.80x200mm")
	case 58:
		args = append(args, "-o", "media=Custom.58x200mm")
	}
	args = append(args, "-o", "fit-to-page", f.Name())

	out, err := exec.Command("lp", args...).CombinedOutput()
	if err != nil {
		return Result{Success: false, Error: strings.TrimSpace(string(out))}, nil
	}

	// extract job id from "request id is Name-123 (1 file(s))"
	jobID := ""
	if _, after, ok := strings.Cut(string(out), "request id is "); ok {
		if fs := strings.Fields(after); len(fs) > 0 {
			jobID = fs[0]
		}
	}
	return Result{Success: true, JobID: jobID}, nil
}

// ----------------------------
// windows (PowerShell)
// ----------------------------

func listWindows() ([]Info, error) {
	out, err := exec.Command("powershell", "-Command",
		"Get-Printer | Select-Object Name, DriverName, Default | ConvertTo-Json").Output()
	if err != nil {
		return nil, fmt.Errorf("printer: list printers: %w", err)
	}

	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return nil, nil
	}

	type psPrinter struct {
		Name       string `json:"Name"`
		DriverName string `json:"DriverName"`
		Default    bool   `json:"Default"`
	}

	// single object or array, depending on how many printers exist
	var many []psPrinter
	if err := json.Unmarshal([]byte(raw), &many); err != nil {
		var one psPrinter
		if err := json.Unmarshal([]byte(raw), &one); err != nil {
			return nil, fmt.Errorf("printer: parse printer list: %w", err)
		}
		many = []psPrinter{one}
	}

	printers := make([]Info, 0, len(many))
	for _, p := range many {
		printers = append(printers, Info{
			Name:        p.Name,
			IsDefault:   p.Default,
			Description: p.DriverName,
		})
	}
	return printers, nil
}

func printWindows(text string, opts Options) (Result, error) {
	f, err := os.CreateTemp("", "tableside-receipt-*.txt")
	if err != nil {
		return Result{}, fmt.Errorf("printer: create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return Result{}, fmt.Errorf("printer: write temp file: %w", err)
	}
	f.Close()

	cmd := fmt.Sprintf("Get-Content -Raw %q | Out-Printer", f.Name())
	if p := strings.TrimSpace(opts.Printer); p != "" {
		cmd = fmt.Sprintf("Get-Content -Raw %q | Out-Printer -Name %q", f.Name(), p)
	}

	out, err := exec.Command("powershell", "-Command", cmd).CombinedOutput()
	if err != nil {
		return Result{Success: false, Error: strings.TrimSpace(string(out))}, nil
	}
	return Result{Success: true}, nil
}
