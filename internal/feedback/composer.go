// Package feedback renders a scored session into human-readable feedback:
// headline messages, per-round and per-phoneme remarks, summaries, and a
// personalised practice plan. It is a pure function of the scoring output
// and contains no scoring logic of its own.
package feedback

import (
	"fmt"
	"strings"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/scoring"
)

// Report is the complete display payload for a finished session.
type Report struct {
	Level        string `json:"level"`
	OverallScore int    `json:"overallScore"`

	Main MainFeedback `json:"main"`

	Rounds   []RoundFeedback   `json:"rounds"`
	Phonemes []PhonemeFeedback `json:"phonemes"`

	Summary Summary    `json:"summary"`
	Plan    ActionPlan `json:"plan"`

	Motivation string `json:"motivation"`
}

// MainFeedback is the headline section of a report.
type MainFeedback struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Focus   string `json:"focus"`
	Icon    string `json:"icon"`
}

// RoundFeedback is the remark for one attempted round.
type RoundFeedback struct {
	Round    string           `json:"round"`
	Score    int              `json:"score"`
	Category scoring.Category `json:"category"`
	Feedback string           `json:"feedback"`
	Tip      string           `json:"tip"`
	Details  string           `json:"details"`
}

// PhonemeFeedback is the remark for one phoneme category.
type PhonemeFeedback struct {
	Phoneme       string               `json:"phoneme"`
	Score         int                  `json:"score"`
	Feedback      string               `json:"feedback"`
	Tip           string               `json:"tip"`
	Issues        []scoring.IssueCount `json:"issues,omitempty"`
	WeakSentences []int                `json:"weakSentences,omitempty"`
	Priority      scoring.Priority     `json:"priority"`
}

// Summary condenses strengths and improvements into short messages.
type Summary struct {
	Strengths    StrengthSummary    `json:"strengths"`
	Improvements ImprovementSummary `json:"improvements"`

	// Priority is the most urgent improvement priority present, or "none".
	Priority string `json:"priority"`
}

// StrengthSummary condenses the identified strengths.
type StrengthSummary struct {
	Count   int                `json:"count"`
	Message string             `json:"message"`
	List    []scoring.Strength `json:"list"`
}

// ImprovementSummary condenses the identified improvements.
type ImprovementSummary struct {
	Count        int                   `json:"count"`
	HighPriority int                   `json:"highPriority"`
	Message      string                `json:"message"`
	List         []scoring.Improvement `json:"list"`
}

// ActionPlan is the recommended practice schedule.
type ActionPlan struct {
	Daily     []PracticeBlock `json:"daily"`
	Weekly    []WeeklyBlock   `json:"weekly"`
	Immediate []Action        `json:"immediate"`
}

// Action is a single step the learner can take right away.
type Action struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// Composer turns session results into reports.
type Composer struct {
	catalog *catalog.Catalog
}

// NewComposer returns a composer using the given catalog for round
// ordering.
func NewComposer(c *catalog.Catalog) *Composer {
	return &Composer{catalog: c}
}

// Compose renders the full feedback report for a session result. The output
// is deterministic for a given result.
func (c *Composer) Compose(result scoring.SessionResult) Report {
	lvl, ok := levelTemplates[result.Level.Name]
	if !ok {
		lvl = levelTemplates["S1"]
	}
	rng := scoreRangeTemplates[string(scoring.CategoryForScore(float64(result.OverallScore)))]

	return Report{
		Level:        result.Level.Name,
		OverallScore: result.OverallScore,
		Main: MainFeedback{
			Title:   lvl.encouragement,
			Message: rng.message + " " + lvl.main,
			Focus:   lvl.focus,
			Icon:    rng.icon,
		},
		Rounds:   c.roundFeedbacks(result.RoundScores),
		Phonemes: phonemeFeedbacks(result.PhonemeStats),
		Summary: Summary{
			Strengths:    summarizeStrengths(result.Strengths),
			Improvements: summarizeImprovements(result.Improvements),
			Priority:     topPriority(result.Improvements),
		},
		Plan: ActionPlan{
			Daily:     dailyPlan(result.Improvements),
			Weekly:    weeklyPlanForTier(result.Level.Tier),
			Immediate: immediateActions(result.Improvements),
		},
		Motivation: motivation(result.Level.Tier, result.OverallScore),
	}
}

// roundFeedbacks renders one remark per attempted round, in catalog order.
func (c *Composer) roundFeedbacks(rounds map[string]scoring.RoundScore) []RoundFeedback {
	var out []RoundFeedback
	for _, round := range c.catalog.Rounds {
		rs, ok := rounds[round.Name]
		if !ok {
			continue
		}
		tpl, ok := roundTemplates[round.Name]
		if !ok {
			continue
		}
		out = append(out, RoundFeedback{
			Round:    round.Name,
			Score:    rs.Average,
			Category: scoring.CategoryForScore(float64(rs.Average)),
			Feedback: gradedText(tpl, rs.Average),
			Tip:      tpl.tip,
			Details:  roundDetails(round.Name, rs.Average),
		})
	}
	return out
}

func roundDetails(round string, score int) string {
	tpl, ok := roundDetailTemplates[round]
	if !ok {
		return ""
	}
	switch {
	case score >= 80:
		return tpl.high
	case score >= 60:
		return tpl.medium
	default:
		return tpl.low
	}
}

// phonemeFeedbacks renders one remark per phoneme category that has a
// template, preserving the worst-first order of the stats.
func phonemeFeedbacks(stats []scoring.PhonemeStat) []PhonemeFeedback {
	var out []PhonemeFeedback
	for _, p := range stats {
		tpl, ok := phonemeTemplates[p.Phoneme]
		if !ok {
			continue
		}
		out = append(out, PhonemeFeedback{
			Phoneme:       p.Phoneme,
			Score:         p.Average,
			Feedback:      gradedText(tpl, p.Average),
			Tip:           tpl.tip,
			Issues:        p.MainIssues,
			WeakSentences: p.WeakSentences,
			Priority:      improvementPriority(p.Average),
		})
	}
	return out
}

// gradedText picks the band text for a score: good at 85+, fair at 70+,
// poor below.
func gradedText(tpl gradedTemplate, score int) string {
	switch {
	case score >= 85:
		return tpl.good
	case score >= 70:
		return tpl.fair
	default:
		return tpl.poor
	}
}

func improvementPriority(score int) scoring.Priority {
	switch {
	case score < 60:
		return scoring.PriorityHigh
	case score < 70:
		return scoring.PriorityMedium
	default:
		return scoring.PriorityLow
	}
}

func summarizeStrengths(strengths []scoring.Strength) StrengthSummary {
	if len(strengths) == 0 {
		return StrengthSummary{
			Message: "No standout strengths yet. Keep practising!",
		}
	}

	top := strengths
	if len(top) > 3 {
		top = top[:3]
	}

	var message string
	if len(top) == 1 {
		message = fmt.Sprintf("You showed a clear strength in '%s'.", top[0].Name)
	} else {
		names := make([]string, len(top))
		for i, s := range top {
			names[i] = "'" + s.Name + "'"
		}
		message = fmt.Sprintf("You showed strengths in %s.", strings.Join(names, ", "))
	}

	return StrengthSummary{
		Count:   len(strengths),
		Message: message,
		List:    top,
	}
}

func summarizeImprovements(improvements []scoring.Improvement) ImprovementSummary {
	if len(improvements) == 0 {
		return ImprovementSummary{
			Message: "Strong results across every area!",
		}
	}

	high := 0
	for _, imp := range improvements {
		if imp.Priority == scoring.PriorityHigh {
			high++
		}
	}

	// Improvements arrive sorted by priority, so the first entry is the
	// most urgent one.
	message := fmt.Sprintf("Start with '%s' and work through the rest step by step.", improvements[0].Name)
	if improvements[0].Priority == scoring.PriorityHigh {
		message = fmt.Sprintf("Improving '%s' first will give the biggest gain.", improvements[0].Name)
	}

	list := improvements
	if len(list) > 3 {
		list = list[:3]
	}

	return ImprovementSummary{
		Count:        len(improvements),
		HighPriority: high,
		Message:      message,
		List:         list,
	}
}

func topPriority(improvements []scoring.Improvement) string {
	hasMedium := false
	for _, imp := range improvements {
		switch imp.Priority {
		case scoring.PriorityHigh:
			return string(scoring.PriorityHigh)
		case scoring.PriorityMedium:
			hasMedium = true
		}
	}
	if hasMedium {
		return string(scoring.PriorityMedium)
	}
	if len(improvements) > 0 {
		return string(scoring.PriorityLow)
	}
	return "none"
}

// dailyPlan builds targeted drills for the most urgent phoneme
// improvements and pads with the default blocks up to two entries.
func dailyPlan(improvements []scoring.Improvement) []PracticeBlock {
	urgent := pickUrgent(improvements)

	var plan []PracticeBlock
	for _, imp := range urgent {
		if imp.Type != "phoneme" {
			continue
		}
		drills, ok := targetedDrills[imp.Name]
		if !ok {
			continue
		}
		plan = append(plan, PracticeBlock{
			Focus:     imp.Name,
			Duration:  "15 min",
			Exercises: drills,
		})
	}

	for i := 0; len(plan) < 2 && i < len(defaultDailyBlocks); i++ {
		plan = append(plan, defaultDailyBlocks[i])
	}
	return plan
}

// pickUrgent selects up to two improvements, highest priority first.
func pickUrgent(improvements []scoring.Improvement) []scoring.Improvement {
	var urgent []scoring.Improvement
	for _, imp := range improvements {
		if imp.Priority == scoring.PriorityHigh {
			urgent = append(urgent, imp)
			if len(urgent) == 2 {
				return urgent
			}
		}
	}
	if len(urgent) == 0 {
		for _, imp := range improvements {
			if imp.Priority == scoring.PriorityMedium {
				urgent = append(urgent, imp)
				if len(urgent) == 2 {
					return urgent
				}
			}
		}
	}
	if len(urgent) == 0 && len(improvements) > 0 {
		urgent = append(urgent, improvements[0])
	}
	return urgent
}

// weeklyPlanForTier adapts the weekly schedule to the learner's level:
// beginners get a lighter foundation plan, advanced learners an extended
// one.
func weeklyPlanForTier(tier int) []WeeklyBlock {
	switch {
	case tier <= 3:
		out := make([]WeeklyBlock, 0, 4)
		for _, day := range weeklyPlan[:4] {
			exercises := day.Exercises
			if len(exercises) > 2 {
				exercises = exercises[:2]
			}
			out = append(out, WeeklyBlock{
				Title:     day.Title,
				Focus:     day.Focus + " (foundation)",
				Exercises: exercises,
			})
		}
		return out
	case tier <= 6:
		out := make([]WeeklyBlock, len(weeklyPlan))
		copy(out, weeklyPlan)
		return out
	default:
		out := make([]WeeklyBlock, 0, len(weeklyPlan))
		for _, day := range weeklyPlan {
			exercises := make([]string, 0, len(day.Exercises)+1)
			exercises = append(exercises, day.Exercises...)
			exercises = append(exercises, "Compare your rendition against native recordings")
			out = append(out, WeeklyBlock{
				Title:     day.Title,
				Focus:     day.Focus + " (advanced)",
				Exercises: exercises,
			})
		}
		return out
	}
}

// immediateActions suggests up to three things to do right now, starting
// with the most urgent improvement.
func immediateActions(improvements []scoring.Improvement) []Action {
	var actions []Action
	if len(improvements) > 0 {
		actions = append(actions, Action{
			Action:      fmt.Sprintf("Observe your '%s' closely", improvements[0].Name),
			Description: "Check the mouth shape for this sound in a mirror right now.",
			Duration:    "5 min",
		})
	}
	actions = append(actions,
		Action{
			Action:      "Set a goal for today",
			Description: "Pick one small pronunciation goal to hit before the day ends.",
			Duration:    "2 min",
		},
		Action{
			Action:      "Prepare to record",
			Description: "Set up a recording app so you can capture your own speech.",
			Duration:    "3 min",
		},
	)
	if len(actions) > 3 {
		actions = actions[:3]
	}
	return actions
}

// motivation picks an encouragement line for the learner's stage. The line
// is chosen deterministically from the score so the same result always
// renders the same report.
func motivation(tier, score int) string {
	var stage int
	switch {
	case tier <= 3:
		stage = 0
	case tier <= 6:
		stage = 1
	case tier <= 8:
		stage = 2
	default:
		stage = 3
	}
	lines := motivationByStage[stage]
	return lines[score%len(lines)]
}
