package session

import "github.com/abhisek/engliz/internal/bank"

// SkillStat is the per-skill accuracy breakdown for the summary screen.
type SkillStat struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// Summary is the host-facing view of a session's results.
type Summary struct {
	SessionID    string                   `json:"session_id"`
	Finished     bool                     `json:"finished"`
	FinalLevel   bank.Level               `json:"final_level,omitempty"`
	Confirmed    bool                     `json:"confirmed"`
	TotalItems   int                      `json:"total_items"`
	TotalCorrect int                      `json:"total_correct"`
	BlockResults []BlockResult            `json:"block_results"`
	History      []AnswerRecord           `json:"history"`
	Writing      []WritingRecord          `json:"writing,omitempty"`
	SkillStats   map[bank.Skill]SkillStat `json:"skill_stats"`
}

// Summarize builds the summary view from a session state. Safe to call at
// any point; an unfinished session simply has Finished=false and no final
// level.
func Summarize(st *State) Summary {
	s := Summary{
		SessionID:    st.ID,
		Finished:     st.Finished,
		Confirmed:    st.Confirmed,
		TotalItems:   st.TotalItems,
		BlockResults: st.BlockResults,
		History:      st.History,
		Writing:      st.WritingResults,
		SkillStats:   make(map[bank.Skill]SkillStat),
	}
	if st.Finished {
		s.FinalLevel = st.FinalLevel
	}
	for _, rec := range st.History {
		stat := s.SkillStats[rec.Skill]
		stat.Attempted++
		if rec.Correct {
			stat.Correct++
			s.TotalCorrect++
		}
		s.SkillStats[rec.Skill] = stat
	}
	return s
}

// Feedback returns the study advice paragraph for a final band.
func Feedback(lvl bank.Level) string {
	switch lvl {
	case bank.LevelA1, bank.LevelA2:
		return "You might want to focus on basic grammar and everyday vocabulary. " +
			"Consider taking beginner courses or practicing simple conversations."
	case bank.LevelB1, bank.LevelB2:
		return "Your English is at an intermediate level. Try reading articles and books, " +
			"and practice writing short essays to improve your fluency."
	default:
		return "You're at an advanced level! To refine your skills, consider advanced grammar " +
			"studies, academic writing, and engaging with native speakers on complex topics."
	}
}
