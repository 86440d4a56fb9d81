package catalog

// Builtin returns the default English assessment catalog: three rounds of
// twenty sentences and the ten-level proficiency scale.
func Builtin() *Catalog {
	return &Catalog{
		Rounds: []Round{
			{
				ID:          1,
				Name:        "Basic Clarity",
				Weight:      0.4,
				Description: "Clarity of everyday expressions",
				Sentences: []Sentence{
					{
						ID:                1,
						Text:              "Hello, how are you doing today?",
						Difficulty:        DifficultyEasy,
						TargetPhonemes:    []string{"h", "aʊ", "ɑː", "d", "ɪ", "ŋ"},
						Focus:             "Basic greeting and word linking",
						ReferenceDuration: 1.8,
						IdealDuration:     2.0,
						PhonemeTags:       []string{"Greetings", "Linking"},
					},
					{
						ID:                2,
						Text:              "I need to go to the supermarket later.",
						Difficulty:        DifficultyEasy,
						TargetPhonemes:    []string{"aɪ", "iː", "d", "t", "g", "əʊ", "ð", "s", "l", "eɪ"},
						Focus:             "Everyday statements and linking",
						ReferenceDuration: 2.5,
						IdealDuration:     2.8,
						PhonemeTags:       []string{"Everyday", "Linking"},
					},
					{
						ID:                3,
						Text:              "Could you please repeat that more slowly?",
						Difficulty:        DifficultyEasy,
						TargetPhonemes:    []string{"k", "ʊ", "d", "j", "uː", "p", "l", "iː", "z", "r", "ɪ", "t", "æ", "m", "ɔː", "sl", "əʊ", "l", "iː"},
						Focus:             "Question intonation and polite requests",
						ReferenceDuration: 2.8,
						IdealDuration:     3.2,
						PhonemeTags:       []string{"Questions", "Politeness"},
					},
					{
						ID:                4,
						Text:              "The meeting has been postponed until Friday.",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"ð", "iː", "m", "t", "ɪ", "ŋ", "h", "æ", "z", "b", "ɪː", "n", "p", "əʊ", "s", "t", "p", "əʊ", "n", "d", "ʌ", "n", "t", "ɪ", "l", "f", "r", "aɪ", "d", "eɪ"},
						Focus:             "Business vocabulary and consonant clusters",
						ReferenceDuration: 3.2,
						IdealDuration:     3.5,
						PhonemeTags:       []string{"Business", "Consonants"},
					},
					{
						ID:                5,
						Text:              "She's studying computer science at university.",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"ʃ", "iː", "z", "s", "t", "ʌ", "d", "iː", "ɪ", "ŋ", "k", "ə", "m", "p", "j", "uː", "t", "ə", "s", "aɪ", "ə", "n", "s", "æ", "t", "j", "uː", "n", "ɪ", "v", "ɜː", "s", "ɪ", "t", "iː"},
						Focus:             "Academic vocabulary and sibilant sequences",
						ReferenceDuration: 3.5,
						IdealDuration:     3.8,
						PhonemeTags:       []string{"Academic", "S/Z"},
					},
					{
						ID:                6,
						Text:              "Would you like some water or coffee?",
						Difficulty:        DifficultyEasy,
						TargetPhonemes:    []string{"w", "ʊ", "d", "j", "uː", "l", "aɪ", "k", "s", "ʌ", "m", "w", "ɔː", "t", "ə", "ɔː", "k", "ɒ", "f", "iː"},
						Focus:             "Offers and choice questions",
						ReferenceDuration: 2.3,
						IdealDuration:     2.6,
						PhonemeTags:       []string{"Offers", "Questions"},
					},
					{
						ID:                7,
						Text:              "It's much warmer than I expected.",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"ɪ", "t", "s", "m", "ʌ", "tʃ", "w", "ɔː", "m", "ə", "ð", "æ", "n", "aɪ", "ɪ", "k", "s", "p", "e", "k", "t", "ɪ", "d"},
						Focus:             "Comparatives and the TH sound",
						ReferenceDuration: 2.7,
						IdealDuration:     3.0,
						PhonemeTags:       []string{"Comparisons", "TH"},
					},
				},
			},
			{
				ID:          2,
				Name:        "Phoneme Discrimination",
				Weight:      0.3,
				Description: "L/R, P/F and vowel-length contrast",
				Sentences: []Sentence{
					{
						ID:                8,
						Text:              "Red lorry, yellow lorry, red lorry, yellow lorry.",
						Difficulty:        DifficultyHard,
						TargetPhonemes:    []string{"r", "e", "d", "l", "ɒ", "r", "iː", "j", "e", "l", "əʊ", "l", "ɒ", "r", "iː"},
						Focus:             "L/R distinction and tongue placement",
						ReferenceDuration: 3.0,
						IdealDuration:     3.5,
						PhonemeTags:       []string{"L/R", "Tongue Twister"},
					},
					{
						ID:                9,
						Text:              "The librarian collected rare literary relics regularly.",
						Difficulty:        DifficultyHard,
						TargetPhonemes:    []string{"ð", "l", "aɪ", "b", "r", "eə", "r", "iː", "ə", "n", "k", "ə", "l", "e", "k", "t", "ɪ", "d", "r", "eə", "l", "ɪ", "t", "ə", "r", "ə", "r", "iː", "r", "e", "l", "ɪ", "k", "s", "r", "e", "g", "j", "ə", "l", "ə", "l", "iː"},
						Focus:             "Mixed L/R in complex words",
						ReferenceDuration: 4.0,
						IdealDuration:     4.5,
						PhonemeTags:       []string{"L/R", "Consonants"},
					},
					{
						ID:                10,
						Text:              "Flying rabbits are really rather ridiculous.",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"f", "l", "aɪ", "ɪ", "ŋ", "r", "æ", "b", "ɪ", "t", "s", "ɑː", "r", "ɪ", "ə", "l", "iː", "r", "æ", "ð", "ə", "r", "ɪ", "d", "ɪ", "k", "j", "ə", "l", "ə", "s"},
						Focus:             "Consecutive R sounds and intonation",
						ReferenceDuration: 3.2,
						IdealDuration:     3.7,
						PhonemeTags:       []string{"L/R", "Intonation"},
					},
					{
						ID:                11,
						Text:              "Peter Piper picked a peck of pickled peppers.",
						Difficulty:        DifficultyHard,
						TargetPhonemes:    []string{"p", "iː", "t", "ə", "p", "aɪ", "p", "ə", "p", "ɪ", "k", "t", "ə", "p", "e", "k", "ɒ", "v", "p", "ɪ", "k", "ə", "l", "d", "p", "e", "p", "ə", "z"},
						Focus:             "P/F distinction and bilabial plosives",
						ReferenceDuration: 3.0,
						IdealDuration:     3.4,
						PhonemeTags:       []string{"P/F", "Plosives"},
					},
					{
						ID:                12,
						Text:              "Five fluffy foxes fled from four fierce frogs.",
						Difficulty:        DifficultyHard,
						TargetPhonemes:    []string{"f", "aɪ", "v", "f", "l", "ʌ", "f", "iː", "f", "ɒ", "k", "s", "ɪ", "z", "f", "l", "e", "d", "f", "r", "ɒ", "m", "f", "ɔː", "f", "ɪə", "s", "f", "r", "ɒ", "g", "z"},
						Focus:             "Sustained F, the labiodental fricative",
						ReferenceDuration: 3.5,
						IdealDuration:     4.0,
						PhonemeTags:       []string{"P/F", "Fricatives"},
					},
					{
						ID:                13,
						Text:              "Sheep should sleep in sheets, not ships.",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"ʃ", "iː", "p", "ʃ", "ʊ", "d", "sl", "iː", "p", "ɪ", "n", "ʃ", "iː", "t", "s", "n", "ɒ", "t", "ʃ", "ɪ", "p", "s"},
						Focus:             "Long /iː/ versus short /ɪ/",
						ReferenceDuration: 3.0,
						IdealDuration:     3.3,
						PhonemeTags:       []string{"Vowels", "S/Z"},
					},
					{
						ID:                14,
						Text:              "The cook took a good look at the full book.",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"ð", "k", "ʊ", "k", "t", "ʊ", "k", "ə", "g", "ʊ", "d", "l", "ʊ", "k", "æ", "t", "ð", "f", "ʊ", "l", "b", "ʊ", "k"},
						Focus:             "/ʊ/ versus /uː/",
						ReferenceDuration: 3.2,
						IdealDuration:     3.6,
						PhonemeTags:       []string{"Vowels"},
					},
				},
			},
			{
				ID:          3,
				Name:        "Intonation & Rhythm",
				Weight:      0.3,
				Description: "Intonation, rhythm and pacing control",
				Sentences: []Sentence{
					{
						ID:                15,
						Text:              "Despite the incredibly complicated circumstances, we eventually succeeded.",
						Difficulty:        DifficultyHard,
						TargetPhonemes:    []string{"d", "ɪ", "s", "p", "aɪ", "t", "ð", "ɪ", "n", "k", "r", "e", "d", "ɪ", "b", "l", "iː", "k", "ɒ", "m", "p", "l", "ɪ", "k", "eɪ", "t", "ɪ", "d", "s", "ɜː", "k", "ə", "m", "s", "t", "æ", "n", "s", "ɪ", "z", "w", "iː", "ɪ", "v", "e", "n", "tʃ", "uː", "ə", "l", "iː", "s", "ə", "k", "s", "iː", "d", "ɪ", "d"},
						Focus:             "Long sentences and breath control",
						ReferenceDuration: 5.0,
						IdealDuration:     5.5,
						PhonemeTags:       []string{"Long Sentences", "Breath Control"},
					},
					{
						ID:                16,
						Text:              "I didn't say he stole the money.",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"aɪ", "d", "ɪ", "d", "n", "t", "s", "eɪ", "h", "iː", "s", "t", "əʊ", "l", "d", "ð", "m", "ʌ", "n", "iː"},
						Focus:             "Meaning shift with stress placement",
						ReferenceDuration: 2.5,
						IdealDuration:     3.0,
						Instructions:      "Try stressing a different word on each reading",
						PhonemeTags:       []string{"Stress", "Intonation"},
					},
					{
						ID:                17,
						Text:              "You want me to do what, when, where, and why?",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"j", "uː", "w", "ɒ", "n", "t", "m", "iː", "t", "ə", "d", "uː", "w", "ɒ", "t", "w", "e", "n", "w", "eə", "æ", "n", "d", "w", "aɪ"},
						Focus:             "Question-word intonation",
						ReferenceDuration: 3.0,
						IdealDuration:     3.5,
						PhonemeTags:       []string{"Questions", "Intonation"},
					},
					{
						ID:                18,
						Text:              "Well, to be perfectly honest, I'm not entirely sure, but maybe...",
						Difficulty:        DifficultyMedium,
						TargetPhonemes:    []string{"w", "e", "l", "t", "ə", "b", "iː", "p", "ɜː", "f", "ɪ", "k", "t", "l", "iː", "ɒ", "n", "ɪ", "s", "t", "aɪ", "m", "n", "ɒ", "t", "ɪ", "n", "t", "aɪ", "ə", "l", "iː", "ʃ", "ɔː", "b", "ʌ", "t", "m", "eɪ", "b", "iː"},
						Focus:             "Conversational rhythm and filler phrases",
						ReferenceDuration: 4.0,
						IdealDuration:     4.5,
						PhonemeTags:       []string{"Conversational", "Rhythm"},
					},
					{
						ID:                19,
						Text:              "How now brown cow? The rain in Spain stays mainly in the plain.",
						Difficulty:        DifficultyHard,
						TargetPhonemes:    []string{"h", "aʊ", "n", "aʊ", "b", "r", "aʊ", "n", "k", "aʊ", "ð", "r", "eɪ", "n", "ɪ", "n", "s", "p", "eɪ", "n", "s", "t", "eɪ", "z", "m", "eɪ", "n", "l", "iː", "ɪ", "n", "ð", "p", "l", "eɪ", "n"},
						Focus:             "Diphthongs and prosody",
						ReferenceDuration: 4.5,
						IdealDuration:     5.0,
						PhonemeTags:       []string{"Vowels", "Rhythm"},
					},
					{
						ID:                20,
						Text:              "Unique New York, you need New York, you know you need unique New York.",
						Difficulty:        DifficultyHard,
						TargetPhonemes:    []string{"j", "uː", "n", "iː", "k", "n", "j", "uː", "j", "ɔː", "k", "j", "uː", "n", "iː", "d", "n", "j", "uː", "j", "ɔː", "k", "j", "uː", "n", "əʊ", "j", "uː", "n", "iː", "d", "j", "uː", "n", "iː", "k", "n", "j", "uː", "j", "ɔː", "k"},
						Focus:             "Balancing speed and clarity over repetition",
						ReferenceDuration: 4.0,
						IdealDuration:     4.8,
						PhonemeTags:       []string{"Pacing", "Repetition"},
					},
				},
			},
		},
		Levels: []Level{
			{
				Name:        "S1",
				MinScore:    0,
				MaxScore:    20,
				Title:       "Entry",
				Description: "Basic phoneme production needs practice.",
				Feedback:    "Start with mouth shape and tongue placement for each phoneme.",
				Color:       "#FF5252",
			},
			{
				Name:        "S2",
				MinScore:    21,
				MaxScore:    35,
				Title:       "Beginner",
				Description: "Only some words are identifiable.",
				Feedback:    "Focus on vowel length: contrast 'sheep' and 'ship'.",
				Color:       "#FF9800",
			},
			{
				Name:        "S3",
				MinScore:    36,
				MaxScore:    50,
				Title:       "Lower Intermediate",
				Description: "Simple sentences can be understood from context.",
				Feedback:    "Practise finishing word-final sounds.",
				Color:       "#FFC107",
			},
			{
				Name:        "S4",
				MinScore:    51,
				MaxScore:    60,
				Title:       "Intermediate",
				Description: "Basic communication works but repetition is often needed.",
				Feedback:    "Pin down where the stress falls in each word.",
				Color:       "#8BC34A",
			},
			{
				Name:        "S5",
				MinScore:    61,
				MaxScore:    70,
				Title:       "Upper Intermediate",
				Description: "Most everyday conversation comes across clearly.",
				Feedback:    "Pay attention to linking when words run together.",
				Color:       "#4CAF50",
			},
			{
				Name:        "S6",
				MinScore:    71,
				MaxScore:    80,
				Title:       "Advanced",
				Description: "Communication flows smoothly.",
				Feedback:    "Work on smoothing your intonation contours.",
				Color:       "#2196F3",
			},
			{
				Name:        "S7",
				MinScore:    81,
				MaxScore:    88,
				Title:       "Proficient",
				Description: "Very clear pronunciation with occasionally unnatural intonation.",
				Feedback:    "Practise varying your speaking speed naturally.",
				Color:       "#3F51B5",
			},
			{
				Name:        "S8",
				MinScore:    89,
				MaxScore:    93,
				Title:       "Near Native",
				Description: "Pronunciation is very close to a native speaker.",
				Feedback:    "Mind regional accent differences.",
				Color:       "#673AB7",
			},
			{
				Name:        "S9",
				MinScore:    94,
				MaxScore:    97,
				Title:       "Expert",
				Description: "Practically indistinguishable from a native speaker.",
				Feedback:    "Only certain idiom pronunciations still need polish.",
				Color:       "#9C27B0",
			},
			{
				Name:        "S10",
				MinScore:    98,
				MaxScore:    100,
				Title:       "Master",
				Description: "Perfect pronunciation clarity.",
				Feedback:    "Congratulations, this is professional coach territory.",
				Color:       "#E91E63",
			},
		},
	}
}
