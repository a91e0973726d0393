package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/Guliveer/autostarter/internal/adb"
	"github.com/Guliveer/autostarter/internal/manufacturer"
	"github.com/Guliveer/autostarter/internal/models"
)

// manufacturerView is the -json form of a registry entry.
type manufacturerView struct {
	Name       string                   `json:"name"`
	Brands     []string                 `json:"brands"`
	Components []manufacturer.Component `json:"components"`
	Fallback   string                   `json:"fallback"`
	Action     string                   `json:"action,omitempty"`
}

func (a *app) printf(format string, args ...any) error {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	_, err := fmt.Fprintf(a.out, format, args...)
	return err
}

func (a *app) writeJSON(v any) error {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes rows under a lock so concurrent watch reports do not interleave.
func (a *app) table(write func(w io.Writer)) error {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	write(tw)
	return tw.Flush()
}

func resultText(command string, r models.DeviceReport) string {
	switch {
	case r.Failed():
		return "error: " + r.Error
	case command == "open" && r.Result:
		return "opened"
	case command == "open":
		return "not opened"
	case r.Result:
		return "yes"
	default:
		return "no"
	}
}

func manufacturerText(r models.DeviceReport) string {
	if r.Supported {
		return r.Manufacturer
	}
	if r.Device.Brand != "" {
		return "unsupported (" + r.Device.Brand + ")"
	}
	return "-"
}

func (a *app) printSummary(s models.Summary) error {
	if a.opts.json {
		return a.writeJSON(s)
	}
	return a.table(func(w io.Writer) {
		fmt.Fprintln(w, "SERIAL\tMODEL\tMANUFACTURER\tRESULT")
		for _, r := range s.Reports {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				r.Device.Serial, orDash(r.Device.Model), manufacturerText(r), resultText(s.Command, r))
		}
		fmt.Fprintf(w, "\n%d/%d succeeded\n", s.Success, s.Total)
	})
}

// printReport writes a single report as it arrives, for the watcher.
func (a *app) printReport(r models.DeviceReport) error {
	if a.opts.json {
		a.outMu.Lock()
		defer a.outMu.Unlock()
		return json.NewEncoder(a.out).Encode(r)
	}
	return a.printf("%s %s %s: %s\n",
		r.Timestamp.Format("15:04:05"), r.Device.Serial, manufacturerText(r), resultText(a.cfg.Watch.Action, r))
}

func (a *app) printManufacturers(ms []manufacturer.Manufacturer) error {
	views := lo.Map(ms, func(m manufacturer.Manufacturer, _ int) manufacturerView {
		return manufacturerView{
			Name:       m.Name,
			Brands:     m.Brands,
			Components: m.Components,
			Fallback:   m.Fallback.Kind.String(),
			Action:     m.Fallback.Action,
		}
	})
	if a.opts.json {
		return a.writeJSON(views)
	}
	return a.table(func(w io.Writer) {
		fmt.Fprintln(w, "MANUFACTURER\tBRANDS\tFALLBACK\tCOMPONENTS")
		for _, v := range views {
			fallback := v.Fallback
			if v.Action != "" {
				fallback += " " + v.Action
			}
			for i, c := range v.Components {
				if i == 0 {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Name, strings.Join(v.Brands, ","), fallback, c)
					continue
				}
				fmt.Fprintf(w, "\t\t\t%s\n", c)
			}
			if len(v.Components) == 0 {
				fmt.Fprintf(w, "%s\t%s\t%s\t-\n", v.Name, strings.Join(v.Brands, ","), fallback)
			}
		}
	})
}

func (a *app) printDevices(entries []adb.Entry) error {
	if a.opts.json {
		if entries == nil {
			entries = []adb.Entry{}
		}
		return a.writeJSON(entries)
	}
	if len(entries) == 0 {
		return a.printf("No devices attached\n")
	}
	return a.table(func(w io.Writer) {
		fmt.Fprintln(w, "SERIAL\tSTATE\tMODEL\tPRODUCT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Serial, e.State, orDash(e.Model), orDash(e.Product))
		}
	})
}

func (a *app) printChecks(results []models.CheckResult) error {
	if a.opts.json {
		return a.writeJSON(results)
	}
	return a.table(func(w io.Writer) {
		for _, r := range results {
			fmt.Fprintf(w, "[%s]\t%s\t%s\n", strings.ToUpper(r.Status), r.Name, r.Detail)
		}
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
