package contexts

import "log"

// SeedDemo loads the sample context entries shown on a fresh install.
// Insights and extracted tasks are derived on the way in.
func SeedDemo(store Store) {
	demo := []CreateEntryRequest{
		{
			Content: "Meeting with client tomorrow at 2pm to discuss project requirements. Need to prepare presentation slides.",
			Source:  "whatsapp",
			Type:    "message",
		},
		{
			Content: "Doctor appointment scheduled for Friday 10am. Don't forget to bring insurance card and list of current medications.",
			Source:  "email",
			Type:    "reminder",
		},
		{
			Content: "Team standup notes: Sprint review next week, need to finish user authentication feature and write tests.",
			Source:  "notes",
			Type:    "meeting",
		},
	}

	for _, req := range demo {
		if _, err := store.Create(req); err != nil {
			log.Printf("[WARN] seed context entry failed: %v", err)
		}
	}
}
