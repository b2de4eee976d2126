package chat

import (
	"slices"
	"strings"
	"unicode"
)

type rule struct {
	keywords  []string
	wholeWord bool
	reply     string
}

// Rules are checked in order; the first rule with a matching keyword wins.
var rules = []rule{
	{
		keywords:  []string{"hello", "hi"},
		wholeWord: true,
		reply:     "Hello! Welcome to Roamio Wanderly! How can I help you plan your Nepal adventure today?",
	},
	{
		keywords: []string{"pokhara"},
		reply:    "Pokhara is a beautiful city known as the 'City of Lakes'. It offers stunning views of the Himalayas, beautiful lakes, and activities like paragliding and boating. Would you like to know more about specific attractions in Pokhara?",
	},
	{
		keywords: []string{"kathmandu"},
		reply:    "Kathmandu is the capital city of Nepal, rich in culture and history. You can visit ancient temples, Durbar Square, and experience vibrant local markets. What specific information about Kathmandu would you like?",
	},
	{
		keywords: []string{"everest"},
		reply:    "Mount Everest is the world's highest peak! The Everest Base Camp trek is one of the most popular adventures. Are you interested in trekking information or just curious about the mountain?",
	},
	{
		keywords: []string{"hotel", "stay"},
		reply:    "I can help you find great accommodation options! What city or area in Nepal are you planning to visit? I can recommend hotels based on your budget and preferences.",
	},
	{
		keywords: []string{"food", "restaurant"},
		reply:    "Nepal has amazing cuisine! From traditional Dal Bhat to momos and Newari dishes. What type of food are you interested in, and which city?",
	},
	{
		keywords: []string{"weather"},
		reply:    "Nepal's weather varies by region and season. Generally, spring (March-May) and autumn (September-November) are the best times to visit. What specific region are you planning to visit?",
	},
	{
		keywords: []string{"price", "cost"},
		reply:    "Costs in Nepal vary greatly. Budget travelers can manage $20-30 per day, while mid-range travelers might spend $50-100 per day. What's your budget range and what type of experience are you looking for?",
	},
}

const fallbackReply = "I'd be happy to help you plan your Nepal adventure! You can ask me about destinations, hotels, restaurants, weather, costs, or trekking. What specific information would you like?"

// Reply picks the scripted answer for message.
//
// Greetings must appear as whole words so that "which" or "Chitwan" do not
// read as "hi". Topic keywords match anywhere, which lets "hotels" and
// "restaurants" hit their singular forms.
func Reply(message string) string {
	lower := strings.ToLower(message)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, r := range rules {
		for _, kw := range r.keywords {
			if r.wholeWord && slices.Contains(words, kw) {
				return r.reply
			}
			if !r.wholeWord && strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return fallbackReply
}
