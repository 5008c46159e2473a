// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jeranaias/querydesk-tui/internal/model"
)

// Answerer turns a question into raw model output. The output is expected to
// contain a JSON envelope somewhere in its text.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// AnswererFunc adapts a function to the Answerer interface.
type AnswererFunc func(ctx context.Context, question string) (string, error)

// Answer calls f.
func (f AnswererFunc) Answer(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// NoAnswerText is returned when no rule matches a question.
const NoAnswerText = "I could not find an answer to that question in the demo data."

// =============================================================================
// FIXTURE ANSWERER
// =============================================================================

// FixtureAnswerer answers by keyword over a Dataset. It wraps every answer
// in a ```json fence the way a language model is prompted to.
type FixtureAnswerer struct {
	Data Dataset
	// Delay simulates model latency.
	Delay time.Duration
}

// NewFixtureAnswerer creates an answerer over the demo data set.
func NewFixtureAnswerer() *FixtureAnswerer {
	return &FixtureAnswerer{Data: DemoDataset()}
}

// Answer implements Answerer.
func (a *FixtureAnswerer) Answer(ctx context.Context, question string) (string, error) {
	if a.Delay > 0 {
		select {
		case <-time.After(a.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	resp := a.route(newQuery(question))
	body, err := model.EncodeResponse(resp)
	if err != nil {
		return "", fmt.Errorf("failed to encode answer: %w", err)
	}
	return "Thought: I now know the final answer.\nFinal Answer:\n```json\n" + string(body) + "\n```", nil
}

// route picks the first rule that matches the question.
func (a *FixtureAnswerer) route(q query) model.Response {
	d := a.Data

	if q.empty() {
		return model.Error{Message: "Please ask a question."}
	}

	if c, ok := q.findClient(d.Clients); ok {
		switch {
		case q.has("manager", "rm"):
			return a.clientManager(c)
		case q.has("holding", "holdings", "portfolio", "stock", "stocks"):
			return a.clientHoldings(c)
		default:
			return a.clientProfile(c)
		}
	}

	if sym, ok := q.findSymbol(d.Holdings); ok {
		return a.stockHolders(sym)
	}

	switch {
	case q.has("risk"):
		return a.clientsByRisk(q)
	case q.has("per", "by", "each") && q.has("manager", "managers", "rm", "rms"):
		return a.valuePerManager()
	case q.has("portfolio", "portfolios", "holdings"):
		return a.topPortfolios(q.topN(len(d.Clients)))
	case q.has("manager", "managers", "rms"):
		return a.managers()
	case q.has("client", "clients"):
		return a.clients()
	}

	return model.Error{Message: NoAnswerText}
}

// =============================================================================
// ANSWERS
// =============================================================================

func (a *FixtureAnswerer) clientManager(c Client) model.Response {
	m, ok := a.Data.manager(c.ManagerID)
	if !ok {
		return model.Error{Message: fmt.Sprintf("No relationship manager is recorded for %s.", c.Name)}
	}
	return model.Text{Body: fmt.Sprintf("%s's relationship manager is %s (%s).", c.Name, m.Name, m.Region)}
}

func (a *FixtureAnswerer) clientHoldings(c Client) model.Response {
	var rows []model.Row
	for _, h := range a.Data.Holdings {
		if h.ClientID != c.ID {
			continue
		}
		rows = append(rows, model.Row{
			{Column: "stockSymbol", Value: model.StringValue(h.StockSymbol)},
			{Column: "quantity", Value: model.NumberValue(float64(h.Quantity))},
			{Column: "currentValue", Value: model.NumberValue(h.CurrentValue)},
		})
	}
	return model.Table{Rows: rows}
}

func (a *FixtureAnswerer) clientProfile(c Client) model.Response {
	return model.Text{Body: fmt.Sprintf("%s lives at %s, has a %s risk appetite and prefers %s.",
		c.Name, c.Address, c.RiskAppetite, joinList(c.InvestmentPreferences))}
}

func (a *FixtureAnswerer) stockHolders(symbol string) model.Response {
	holdings := make([]Holding, 0)
	for _, h := range a.Data.Holdings {
		if h.StockSymbol == symbol {
			holdings = append(holdings, h)
		}
	}
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].CurrentValue > holdings[j].CurrentValue
	})

	rows := make([]model.Row, 0, len(holdings))
	for _, h := range holdings {
		c, _ := a.Data.client(h.ClientID)
		rows = append(rows, model.Row{
			{Column: "clientName", Value: model.StringValue(c.Name)},
			{Column: "quantity", Value: model.NumberValue(float64(h.Quantity))},
			{Column: "currentValue", Value: model.NumberValue(h.CurrentValue)},
		})
	}
	return model.Table{Rows: rows}
}

func (a *FixtureAnswerer) clientsByRisk(q query) model.Response {
	level := ""
	for _, l := range []string{"high", "medium", "low"} {
		if q.has(l) {
			level = l
			break
		}
	}

	rows := make([]model.Row, 0)
	for _, c := range a.Data.Clients {
		if level != "" && !strings.EqualFold(c.RiskAppetite, level) {
			continue
		}
		row := model.Row{
			{Column: "clientId", Value: model.StringValue(c.ID)},
			{Column: "name", Value: model.StringValue(c.Name)},
		}
		if level == "" {
			row = append(row, model.Cell{Column: "riskAppetite", Value: model.StringValue(c.RiskAppetite)})
		}
		rows = append(rows, row)
	}
	return model.Table{Rows: rows}
}

func (a *FixtureAnswerer) valuePerManager() model.Response {
	points := make([]model.Point, 0, len(a.Data.Managers))
	for _, m := range a.Data.Managers {
		total := 0.0
		for _, h := range a.Data.Holdings {
			if c, ok := a.Data.client(h.ClientID); ok && c.ManagerID == m.ID {
				total += h.CurrentValue
			}
		}
		points = append(points, model.Point{Name: m.Name, Value: total})
	}
	return model.Chart{Points: points}
}

func (a *FixtureAnswerer) topPortfolios(n int) model.Response {
	type portfolio struct {
		name  string
		total float64
	}
	var ps []portfolio
	for _, c := range a.Data.Clients {
		total := 0.0
		for _, h := range a.Data.Holdings {
			if h.ClientID == c.ID {
				total += h.CurrentValue
			}
		}
		ps = append(ps, portfolio{name: c.Name, total: total})
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].total > ps[j].total })
	if n < len(ps) {
		ps = ps[:n]
	}

	rows := make([]model.Row, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, model.Row{
			{Column: "clientName", Value: model.StringValue(p.name)},
			{Column: "totalValue", Value: model.NumberValue(p.total)},
		})
	}
	return model.Table{Rows: rows}
}

func (a *FixtureAnswerer) managers() model.Response {
	rows := make([]model.Row, 0, len(a.Data.Managers))
	for _, m := range a.Data.Managers {
		rows = append(rows, model.Row{
			{Column: "rmId", Value: model.StringValue(m.ID)},
			{Column: "rmName", Value: model.StringValue(m.Name)},
			{Column: "region", Value: model.StringValue(m.Region)},
		})
	}
	return model.Table{Rows: rows}
}

func (a *FixtureAnswerer) clients() model.Response {
	rows := make([]model.Row, 0, len(a.Data.Clients))
	for _, c := range a.Data.Clients {
		m, _ := a.Data.manager(c.ManagerID)
		rows = append(rows, model.Row{
			{Column: "clientId", Value: model.StringValue(c.ID)},
			{Column: "name", Value: model.StringValue(c.Name)},
			{Column: "rmName", Value: model.StringValue(m.Name)},
		})
	}
	return model.Table{Rows: rows}
}

// =============================================================================
// QUESTION MATCHING
// =============================================================================

// query is a lowercased question split into words.
type query struct {
	text  string
	words map[string]bool
	order []string
}

func newQuery(question string) query {
	text := strings.ToLower(strings.TrimSpace(question))
	order := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]bool, len(order))
	for _, w := range order {
		words[w] = true
	}
	return query{text: text, words: words, order: order}
}

func (q query) empty() bool {
	return len(q.order) == 0
}

// has reports whether any of the words appears in the question.
func (q query) has(words ...string) bool {
	for _, w := range words {
		if q.words[w] {
			return true
		}
	}
	return false
}

// findClient matches a client by full name, or by any part of the name
// longer than three letters.
func (q query) findClient(clients []Client) (Client, bool) {
	for _, c := range clients {
		if strings.Contains(q.text, strings.ToLower(c.Name)) {
			return c, true
		}
	}
	for _, c := range clients {
		for _, part := range strings.Fields(strings.ToLower(c.Name)) {
			if len(part) > 3 && q.words[part] {
				return c, true
			}
		}
	}
	return Client{}, false
}

func (q query) findSymbol(holdings []Holding) (string, bool) {
	for _, h := range holdings {
		if q.words[strings.ToLower(h.StockSymbol)] {
			return h.StockSymbol, true
		}
	}
	return "", false
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// topN reads "top N" from the question, or returns def.
func (q query) topN(def int) int {
	for i, w := range q.order {
		if w != "top" || i+1 >= len(q.order) {
			continue
		}
		next := q.order[i+1]
		if n, err := strconv.Atoi(next); err == nil && n > 0 {
			return n
		}
		if n, ok := numberWords[next]; ok {
			return n
		}
	}
	return def
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return "nothing in particular"
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
