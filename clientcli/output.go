package clientcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Formatter renders operation results and faults for the user.
type Formatter interface {
	FormatSubmit(w io.Writer, result *SubmitResult) error
	FormatRetrieve(w io.Writer, result *RetrieveResult) error
	FormatCheck(w io.Writer, report *StatusReport) error
	FormatList(w io.Writer, listing *FileListing) error
	FormatRepair(w io.Writer, report *RepairReport) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatSubmit formats a submit result as human-readable text.
func (f *HumanFormatter) FormatSubmit(w io.Writer, result *SubmitResult) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Submitted: %s -> %s (%s)\n", result.LocalPath, result.Name, formatSize(result.Size))
	_, _ = fmt.Fprintf(w, "  sha256: %s\n", result.Digest)
	_, _ = fmt.Fprintf(w, "  data shards: %d\n", result.DataShards)
	_, _ = fmt.Fprintf(w, "  parity shards: %d\n", result.ParityShards)
	_, _ = fmt.Fprintf(w, "  shard hashes: %s\n", strings.Join(result.ShardHashes, ", "))
	return nil
}

// FormatRetrieve formats a retrieve result as human-readable text.
func (f *HumanFormatter) FormatRetrieve(w io.Writer, result *RetrieveResult) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Retrieved: %s -> %s (%s)\n", result.Name, result.LocalPath, formatSize(result.Size))
	return nil
}

// FormatCheck formats a status report as human-readable text.
func (f *HumanFormatter) FormatCheck(w io.Writer, report *StatusReport) error {
	_, _ = fmt.Fprintf(w, "Name:          %s\n", report.Name)
	_, _ = fmt.Fprintf(w, "Last modified: %s\n", report.LastModified)
	_, _ = fmt.Fprintf(w, "Health:        %s\n", report.Health)
	_, _ = fmt.Fprintf(w, "Shard hashes:  %s\n", strings.Join(report.ShardHashes, ", "))
	return nil
}

// FormatList formats a file listing as human-readable text. An empty
// archive is reported explicitly rather than rendered as nothing.
func (f *HumanFormatter) FormatList(w io.Writer, listing *FileListing) error {
	if len(listing.Files) == 0 {
		_, _ = fmt.Fprintln(w, "No files archived")
		return nil
	}

	for _, name := range listing.Files {
		_, _ = fmt.Fprintln(w, name)
	}
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "\n%d file(s)\n", len(listing.Files))
	}
	return nil
}

// FormatRepair formats a repair report as human-readable text.
func (f *HumanFormatter) FormatRepair(w io.Writer, report *RepairReport) error {
	_, _ = fmt.Fprintf(w, "Repaired: %s (%s)\n", report.Name, report.Status)
	return nil
}

// FormatError formats a fault as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList formats profiles as a table, marking the default
// with an asterisk.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	maxNameLen := 4 // "NAME"
	for i := range profiles {
		if len(profiles[i].Name) > maxNameLen {
			maxNameLen = len(profiles[i].Name)
		}
	}
	if maxNameLen > 20 {
		maxNameLen = 20
	}

	_, _ = fmt.Fprintf(w, "  %-*s  %s\n", maxNameLen, "NAME", "SERVER")
	_, _ = fmt.Fprintf(w, "  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", 40))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		name := p.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %s\n", marker, maxNameLen, name, p.ServerURL)
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	_, _ = fmt.Fprintf(w, "Name:      %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Server:    %s\n", profile.ServerURL)
	if profile.Timeout > 0 {
		_, _ = fmt.Fprintf(w, "Timeout:   %ds\n", profile.Timeout)
	}
	_, _ = fmt.Fprintf(w, "Loose TLS: %t\n", profile.LooseTLS)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatSubmit formats a submit result as JSON.
func (f *JSONFormatter) FormatSubmit(w io.Writer, result *SubmitResult) error {
	return writeJSON(w, result)
}

// FormatRetrieve formats a retrieve result as JSON.
func (f *JSONFormatter) FormatRetrieve(w io.Writer, result *RetrieveResult) error {
	return writeJSON(w, result)
}

// FormatCheck formats a status report as JSON.
func (f *JSONFormatter) FormatCheck(w io.Writer, report *StatusReport) error {
	return writeJSON(w, report)
}

// FormatList formats a file listing as JSON.
func (f *JSONFormatter) FormatList(w io.Writer, listing *FileListing) error {
	out := *listing
	if out.Files == nil {
		out.Files = []string{}
	}
	return writeJSON(w, &out)
}

// FormatRepair formats a repair report as JSON.
func (f *JSONFormatter) FormatRepair(w io.Writer, report *RepairReport) error {
	return writeJSON(w, report)
}

// FormatError formats a fault as JSON, including its kind tag when the
// error is a *Fault.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
		Kind  string `json:"kind,omitempty"`
	}{
		Error: err.Error(),
	}

	var fault *Fault
	if errors.As(err, &fault) {
		output.Kind = fault.Kind.String()
	}

	return writeJSON(w, output)
}

// FormatProfileList formats profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	type jsonProfile struct {
		Name      string `json:"name"`
		ServerURL string `json:"server_url"`
		Timeout   int    `json:"timeout,omitempty"`
		LooseTLS  bool   `json:"loose_tls,omitempty"`
		Default   bool   `json:"default"`
	}

	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		p := &profiles[i]
		output.Profiles[i] = jsonProfile{
			Name:      p.Name,
			ServerURL: p.ServerURL,
			Timeout:   p.Timeout,
			LooseTLS:  p.LooseTLS,
			Default:   p.Name == defaultName,
		}
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	output := struct {
		Name      string `json:"name"`
		ServerURL string `json:"server_url"`
		Timeout   int    `json:"timeout,omitempty"`
		LooseTLS  bool   `json:"loose_tls"`
		Default   bool   `json:"default"`
	}{
		Name:      profile.Name,
		ServerURL: profile.ServerURL,
		Timeout:   profile.Timeout,
		LooseTLS:  profile.LooseTLS,
		Default:   isDefault,
	}

	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
