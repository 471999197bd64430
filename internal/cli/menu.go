package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"parcel-delivery-sim/internal/domain"
	"parcel-delivery-sim/internal/services"
	"strconv"
	"strings"
)

// Menu is the interactive query loop run after a simulation finishes.
type Menu struct {
	Queries *services.QueryService
	In      io.Reader
	Out     io.Writer
}

func NewMenu(q *services.QueryService, in io.Reader, out io.Writer) *Menu {
	return &Menu{Queries: q, In: in, Out: out}
}

// Run reads commands until the user exits, the input ends or ctx is done.
// Bad input is reported and the loop carries on.
func (m *Menu) Run(ctx context.Context) error {
	sc := bufio.NewScanner(m.In)

	fmt.Fprintln(m.Out, "Parcel Delivery Simulator")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.Out, "\nMenu:\n"+
			"1. Look up a single parcel at a specific time\n"+
			"2. View statuses of all parcels at a specific time\n"+
			"3. View total mileage of all vehicles\n"+
			"4. Exit\n")

		choice, ok := m.prompt(sc, "Enter your choice: ")
		if !ok {
			return sc.Err()
		}

		switch choice {
		case "1":
			if !m.singleStatus(sc) {
				return sc.Err()
			}
		case "2":
			if !m.allStatuses(sc) {
				return sc.Err()
			}
		case "3":
			fmt.Fprintln(m.Out, MileageLine(m.Queries.TotalMileage()))
		case "4":
			fmt.Fprintln(m.Out, "Exiting.")
			return nil
		default:
			fmt.Fprintln(m.Out, "Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Fprint(m.Out, label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// promptTime keeps the loop going on a bad time; ok is false only at end of input.
func (m *Menu) promptTime(sc *bufio.Scanner) (at domain.TimeOfDay, valid, ok bool) {
	raw, ok := m.prompt(sc, "Enter time (HH:MM:SS): ")
	if !ok {
		return 0, false, false
	}
	at, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		fmt.Fprintf(m.Out, "Error: invalid time %q, expected HH:MM:SS\n", raw)
		return 0, false, true
	}
	return at, true, true
}

func (m *Menu) singleStatus(sc *bufio.Scanner) bool {
	raw, ok := m.prompt(sc, "Enter parcel ID: ")
	if !ok {
		return false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(m.Out, "Error: invalid parcel ID %q\n", raw)
		return true
	}

	at, valid, ok := m.promptTime(sc)
	if !ok || !valid {
		return ok
	}

	view, err := m.Queries.ParcelStatus(id, at)
	if errors.Is(err, domain.ErrParcelNotFound) {
		fmt.Fprintf(m.Out, "Parcel ID %d not found.\n", id)
		return true
	}
	if err != nil {
		fmt.Fprintf(m.Out, "Error: %v\n", err)
		return true
	}

	fmt.Fprintln(m.Out, StatusLine(view))
	return true
}

func (m *Menu) allStatuses(sc *bufio.Scanner) bool {
	at, valid, ok := m.promptTime(sc)
	if !ok || !valid {
		return ok
	}

	for _, v := range m.Queries.AllStatuses(at) {
		fmt.Fprintln(m.Out, StatusLine(v))
	}
	return true
}
