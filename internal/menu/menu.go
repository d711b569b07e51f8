package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/cabinbooking/internal/cabin"
	"github.com/Domenick1991/cabinbooking/internal/domain"
	"github.com/Domenick1991/cabinbooking/internal/service/booking"
	"github.com/Domenick1991/cabinbooking/internal/service/seatplan"
)

const menuText = `
Menu:
1. Display floor plan
2. Check availability of seat
3. Book a seat
4. Free a seat
5. Show booking state
6. Exit program
`

// Menu is the operator console. Every option maps to one plan or ledger
// call; errors are printed and the loop continues.
type Menu struct {
	plan   seatplan.PlanUseCase
	ledger booking.LedgerUseCase
	in     *bufio.Scanner
	out    io.Writer
}

func New(plan seatplan.PlanUseCase, ledger booking.LedgerUseCase, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		plan:   plan,
		ledger: ledger,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run loops until the operator exits, input ends, or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(m.out, menuText)
		choice, ok := m.prompt(ctx, "Enter your choice: ")
		if !ok {
			if ctx.Err() != nil {
				return nil
			}
			return m.in.Err()
		}

		switch choice {
		case "1":
			m.displayPlan(ctx)
		case "2":
			m.checkSeat(ctx)
		case "3":
			m.bookSeat(ctx)
		case "4":
			m.freeSeat(ctx)
		case "5":
			m.showBookings()
		case "6":
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter a number from 1 to 6.")
		}
	}
}

// prompt reads one line. A line that arrives after ctx is cancelled is
// discarded.
func (m *Menu) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() || ctx.Err() != nil {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) displayPlan(ctx context.Context) {
	fmt.Fprintln(m.out, "Floor Plan:")
	for _, row := range m.plan.Plan(ctx) {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = renderCell(cell)
		}
		fmt.Fprintln(m.out, strings.Join(cells, "\t"))
	}
}

func renderCell(cell domain.PlanCell) string {
	switch cell.State {
	case domain.SeatBooked:
		return cell.Label + " R"
	case domain.SeatFree:
		return cell.Label + " F"
	default:
		return cell.Label
	}
}

func (m *Menu) checkSeat(ctx context.Context) {
	seat, ok := m.prompt(ctx, "Enter seat number: ")
	if !ok {
		return
	}
	status, err := m.plan.Status(ctx, seat)
	if err != nil {
		m.reportError(seat, err)
		return
	}
	if status.State == domain.SeatBooked {
		fmt.Fprintf(m.out, "Seat %s is already booked.\n", status.Seat)
		return
	}
	fmt.Fprintf(m.out, "Seat %s is available.\n", status.Seat)
}

func (m *Menu) bookSeat(ctx context.Context) {
	seat, ok := m.prompt(ctx, "Enter seat number to book: ")
	if !ok {
		return
	}
	status, err := m.plan.Status(ctx, seat)
	if err != nil {
		m.reportError(seat, err)
		return
	}
	if status.State == domain.SeatBooked {
		m.reportError(status.Seat, domain.ErrAlreadyBooked)
		return
	}

	var passenger domain.Passenger
	if passenger.PassportNumber, ok = m.prompt(ctx, "Enter passport number: "); !ok {
		return
	}
	if passenger.FirstName, ok = m.prompt(ctx, "Enter first name: "); !ok {
		return
	}
	if passenger.LastName, ok = m.prompt(ctx, "Enter last name: "); !ok {
		return
	}

	record, err := m.ledger.Book(ctx, status.Seat, passenger)
	if err != nil {
		m.reportError(status.Seat, err)
		return
	}
	fmt.Fprintf(m.out, "Seat %s booked. Booking reference: %s\n", record.Seat, record.Reference)
}

func (m *Menu) freeSeat(ctx context.Context) {
	seat, ok := m.prompt(ctx, "Enter seat number to free: ")
	if !ok {
		return
	}
	status, err := m.plan.Status(ctx, seat)
	if err != nil {
		m.reportError(seat, err)
		return
	}
	if err := m.ledger.Free(ctx, status.Seat); err != nil {
		m.reportError(status.Seat, err)
		return
	}
	fmt.Fprintf(m.out, "Seat %s is now free.\n", status.Seat)
}

func (m *Menu) showBookings() {
	bookings := m.ledger.Bookings()
	if len(bookings) == 0 {
		fmt.Fprintln(m.out, "No seats booked.")
		return
	}
	fmt.Fprintln(m.out, "Booked seats:")
	for _, b := range bookings {
		fmt.Fprintf(m.out, "%s\t%s\t%s %s\n", b.Seat, b.Reference, b.FirstName, b.LastName)
	}
}

func (m *Menu) reportError(seat string, err error) {
	switch {
	case errors.Is(err, cabin.ErrReservedZone):
		fmt.Fprintf(m.out, "Seat %s is a storage area and cannot be booked.\n", seat)
	case errors.Is(err, cabin.ErrInvalidSeat):
		fmt.Fprintf(m.out, "Invalid seat number %q.\n", seat)
	case errors.Is(err, domain.ErrAlreadyBooked):
		fmt.Fprintf(m.out, "Seat %s is already booked.\n", seat)
	case errors.Is(err, domain.ErrNotBooked):
		fmt.Fprintf(m.out, "Seat %s is not booked.\n", seat)
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}
