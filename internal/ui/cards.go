package ui

import (
	"strconv"
	"strings"
	"time"

	"taskboard/internal/dashboard"

	"github.com/charmbracelet/lipgloss"
)

// cardsHeight is the rendered height of the card row: border, value, label,
// border.
const cardsHeight = 4

// cardState is one stat card and its running count-up.
type cardState struct {
	card    dashboard.Card
	counter dashboard.CountUp
	shown   int
}

// StatCards renders the three stat cards. Values count up to their targets
// whenever a target changes.
type StatCards struct {
	cards   []cardState
	started time.Time
	animate bool
	width   int
	styles  *Styles
}

// NewStatCards creates the card row. With animate false values jump straight
// to their targets.
func NewStatCards(styles *Styles, animate bool) *StatCards {
	return &StatCards{styles: styles, animate: animate}
}

// SetStyles switches the cards to another theme.
func (c *StatCards) SetStyles(s *Styles) {
	c.styles = s
}

// SetWidth sets the total width of the row.
func (c *StatCards) SetWidth(width int) {
	c.width = width
}

// SetCards updates the targets. The first call counts every card up from
// zero; later changes show the new value at once, while cards untouched by
// the change keep any count-up still in flight. Reports whether an animation
// is now running.
func (c *StatCards) SetCards(cards []dashboard.Card, now time.Time) bool {
	if len(c.cards) == 0 {
		c.cards = make([]cardState, len(cards))
		for i, card := range cards {
			c.cards[i] = cardState{
				card:    card,
				counter: dashboard.CountUp{From: 0, To: card.Value, Duration: dashboard.CountUpDuration},
			}
		}
		if !c.animate {
			c.settle()
			return false
		}
		c.started = now
		return c.Tick(now)
	}

	next := make([]cardState, len(cards))
	for i, card := range cards {
		if i < len(c.cards) && c.cards[i].card.Value == card.Value {
			next[i] = c.cards[i]
			next[i].card = card
			continue
		}
		next[i] = cardState{
			card:    card,
			counter: dashboard.CountUp{From: card.Value, To: card.Value, Duration: dashboard.CountUpDuration},
			shown:   card.Value,
		}
	}
	c.cards = next
	if !c.animate {
		c.settle()
		return false
	}
	return c.Tick(now)
}

// settle jumps every card to its target.
func (c *StatCards) settle() {
	for i := range c.cards {
		c.cards[i].shown = c.cards[i].card.Value
		c.cards[i].counter.From = c.cards[i].card.Value
	}
}

// Tick advances the animation to now and reports whether any card is still
// counting.
func (c *StatCards) Tick(now time.Time) bool {
	elapsed := now.Sub(c.started)
	running := false
	for i := range c.cards {
		c.cards[i].shown = c.cards[i].counter.Value(elapsed)
		if !c.cards[i].counter.Done(elapsed) {
			running = true
		}
	}
	return running
}

// Values returns the numbers currently displayed.
func (c *StatCards) Values() []int {
	out := make([]int, len(c.cards))
	for i, cs := range c.cards {
		out[i] = cs.shown
	}
	return out
}

// View renders the cards side by side.
func (c *StatCards) View() string {
	if len(c.cards) == 0 {
		return ""
	}
	n := len(c.cards)
	// Each card adds two border columns; gaps of one column between cards.
	inner := (c.width - (n - 1) - 2*n) / n
	if inner < 12 {
		inner = 12
	}

	views := make([]string, 0, 2*n-1)
	for i, cs := range c.cards {
		if i > 0 {
			views = append(views, " ")
		}
		value := c.styles.CardValueStyle.Render(strconv.Itoa(cs.shown))
		label := c.styles.CardLabelStyle.Render(cs.card.Label)
		body := strings.Join([]string{value, label}, "\n")
		views = append(views, c.styles.CardStyle.Width(inner).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}
