package moderation

// Category is one banned-keyword bucket with its rejection reason.
// Categories are scanned in slice order and the first matching keyword
// wins, so ordering is part of the contract.
type Category struct {
	Name     string   `json:"name"`
	Reason   string   `json:"reason"`
	Literal  bool     `json:"literal"` // substring match instead of whole-word
	Keywords []string `json:"keywords"`
}

// DefaultCategories returns the built-in deny lists. Deployments can
// replace them wholesale via configuration; the filter itself is a static,
// non-ML deny list and false positives/negatives are an accepted trade-off.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:   "explicit",
			Reason: "Explicit content is not allowed.",
			Keywords: []string{
				"sex", "porn", "nude", "xxx", "blowjob", "sexvideo",
				"erotic", "naked", "pornography",
			},
		},
		{
			Name:   "profanity",
			Reason: "Abusive language is not allowed.",
			Keywords: []string{
				"fuck", "bitch", "asshole", "bastard", "shit",
				"motherfucker", "dick", "pussy",
			},
		},
		{
			Name:   "hateSpeech",
			Reason: "Hate speech or discriminatory terms are not allowed.",
			Keywords: []string{
				"racist", "casteist", "terrorist", "nazi", "hate",
				"discrimination", "religious abuse", "caste abuse", "bitch",
			},
		},
		{
			Name:   "scam",
			Reason: "Potential scam or fraud-related content detected.",
			Keywords: []string{
				"easy money", "quick cash", "pay to join", "earn fast",
				"become rich quick", "lottery winner", "investment double",
			},
		},
		{
			Name:    "suspiciousLinks",
			Reason:  "External messenger or suspicious links are not allowed.",
			Literal: true,
			Keywords: []string{
				"t.me/", "chat.whatsapp.com/", "bit.ly/scam",
				"tinyurl.com/scam", "telegram link", "whatsapp group link",
			},
		},
	}
}
