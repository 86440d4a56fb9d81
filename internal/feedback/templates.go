package feedback

// levelTemplate is the per-level headline feedback.
type levelTemplate struct {
	main          string
	encouragement string
	focus         string
}

var levelTemplates = map[string]levelTemplate{
	"S1": {
		main:          "Systematic practice of the basic phonemes is needed.",
		encouragement: "Everyone starts here. Work through it one step at a time!",
		focus:         "Concentrate on the mouth shape and tongue position of each phoneme.",
	},
	"S2": {
		main:          "Only some words come out clearly.",
		encouragement: "The basics are already there! A little more practice will go a long way.",
		focus:         "Learn to hear and produce the difference in vowel length.",
	},
	"S3": {
		main:          "Simple sentences can be understood from context.",
		encouragement: "The foundation for communication is in place. Now make it natural!",
		focus:         "Concentrate on finishing the final sounds of words.",
	},
	"S4": {
		main:          "Basic communication works but often needs repetition.",
		encouragement: "Good progress! Aim for more precise articulation next.",
		focus:         "Pin down exactly where the stress falls in each word.",
	},
	"S5": {
		main:          "Most everyday conversation comes across clearly.",
		encouragement: "Excellent! You are one step away from natural-sounding speech.",
		focus:         "Be deliberate about linking when words run together.",
	},
	"S6": {
		main:          "Communication flows smoothly at this level.",
		encouragement: "Really well done! This is the polishing stage.",
		focus:         "Smooth out your intonation contours.",
	},
	"S7": {
		main:          "Very clear pronunciation, with occasionally unnatural intonation.",
		encouragement: "Close to native-like! Only fine adjustments remain.",
		focus:         "Vary your speaking speed naturally.",
	},
	"S8": {
		main:          "Pronunciation is very close to a native speaker.",
		encouragement: "Remarkable! You are speaking at an expert level.",
		focus:         "Mind regional accent differences.",
	},
	"S9": {
		main:          "Practically indistinguishable from a native speaker.",
		encouragement: "Near-perfect pronunciation. Seriously impressive.",
		focus:         "Perfect the pronunciation of specific idioms.",
	},
	"S10": {
		main:          "Perfect pronunciation clarity.",
		encouragement: "Congratulations, you are a pronunciation master!",
		focus:         "You could be teaching this to others.",
	},
}

// scoreRangeTemplate is the overall-score headline.
type scoreRangeTemplate struct {
	title   string
	message string
	icon    string
}

var scoreRangeTemplates = map[string]scoreRangeTemplate{
	"excellent": {
		title:   "Outstanding!",
		message: "Nearly perfect pronunciation. Only details are left to adjust.",
		icon:    "🏆",
	},
	"good": {
		title:   "Well done!",
		message: "Solid pronunciation. Improving a few areas will make it even better.",
		icon:    "⭐",
	},
	"fair": {
		title:   "Not bad",
		message: "Communication works, but more precise pronunciation needs practice.",
		icon:    "👍",
	},
	"poor": {
		title:   "Needs work",
		message: "Starting with basic pronunciation drills is the way to go.",
		icon:    "💪",
	},
}

// gradedTemplate holds feedback text per performance band plus a tip.
type gradedTemplate struct {
	good string
	fair string
	poor string
	tip  string
}

var phonemeTemplates = map[string]gradedTemplate{
	"L/R": {
		good: "You distinguish L and R very well!",
		fair: "L and R occasionally get mixed up.",
		poor: "Telling L and R apart is a struggle right now.",
		tip:  "For L, touch the tongue tip behind the upper teeth; for R, curl the tongue back.",
	},
	"P/F": {
		good: "Your P and F sounds are very distinct!",
		fair: "P and F sometimes blur together.",
		poor: "The difference between P and F needs to become clearer.",
		tip:  "Pop P by releasing closed lips; for F, rest the upper teeth on the lower lip and push air.",
	},
	"TH": {
		good: "Your TH is spot on!",
		fair: "TH occasionally comes out as a different sound.",
		poor: "TH is being replaced with another sound.",
		tip:  "Slip the tongue lightly between the teeth while pushing air.",
	},
	"Vowels": {
		good: "Your vowels are very accurate!",
		fair: "Vowel length differences need to be clearer.",
		poor: "Vowel production needs focused attention.",
		tip:  "Hold the mouth shape for long vowels; keep short vowels quick and light.",
	},
	"Intonation": {
		good: "Your intonation sounds very natural!",
		fair: "Intonation is occasionally a little unnatural.",
		poor: "Intonation patterns need practice.",
		tip:  "Raise the pitch at the end of questions and on emphasised words.",
	},
}

var roundTemplates = map[string]gradedTemplate{
	"Basic Clarity": {
		good: "You get everyday expressions across clearly.",
		fair: "Everyday expressions are sometimes unclear.",
		poor: "Basic articulation needs practice first.",
		tip:  "Practise speaking slowly and precisely.",
	},
	"Phoneme Discrimination": {
		good: "You distinguish similar phonemes well.",
		fair: "Some phoneme pairs are hard for you to separate.",
		poor: "Phoneme discrimination needs concentrated practice.",
		tip:  "Pay closer attention to tongue and lip placement.",
	},
	"Intonation & Rhythm": {
		good: "Your intonation and rhythm sound natural.",
		fair: "Intonation and rhythm are sometimes unnatural.",
		poor: "Intonation and rhythm patterns need to be learned.",
		tip:  "Shadow native-speaker rhythm patterns.",
	},
}

// roundDetailTemplates gives a longer remark per round and performance tier.
var roundDetailTemplates = map[string]struct{ high, medium, low string }{
	"Basic Clarity": {
		high:   "Near-perfect clarity in everyday conversation.",
		medium: "Most everyday expressions come across clearly.",
		low:    "More focus on basic articulation is needed.",
	},
	"Phoneme Discrimination": {
		high:   "Similar phonemes are separated precisely.",
		medium: "Most phonemes are distinguished, with occasional confusion.",
		low:    "Phoneme discrimination needs systematic practice.",
	},
	"Intonation & Rhythm": {
		high:   "Natural intonation and rhythm throughout.",
		medium: "The basics of intonation are there but could sound more natural.",
		low:    "Intonation and rhythm patterns still need to be learned.",
	},
}

// PracticeBlock is one focused practice unit in a daily plan.
type PracticeBlock struct {
	Focus     string   `json:"focus"`
	Duration  string   `json:"duration"`
	Exercises []string `json:"exercises"`
}

// defaultDailyBlocks pads a daily plan when no targeted drills apply.
var defaultDailyBlocks = []PracticeBlock{
	{
		Focus:    "Morning warm-up",
		Duration: "5 min",
		Exercises: []string{
			"Run through the vowels a, e, i, o, u",
			"Drill the L, R, P, F and TH phonemes",
			"Check mouth shapes in a mirror",
		},
	},
	{
		Focus:    "Midday sentence practice",
		Duration: "10 min",
		Exercises: []string{
			"Five short everyday expressions",
			"Speak slowly and precisely",
			"Record yourself and listen back",
		},
	},
	{
		Focus:    "Evening review",
		Duration: "15 min",
		Exercises: []string{
			"Focused practice on your weakest phonemes",
			"Breath control with longer sentences",
			"Compare against native recordings",
		},
	},
}

// targetedDrills maps a phoneme category to a focused daily drill list.
var targetedDrills = map[string][]string{
	"L/R": {
		"Twenty mirror checks of the L versus R tongue position",
		"Repeat 'red lorry, yellow lorry' ten times",
		"Practise announcing clearly like a radio host",
	},
	"P/F": {
		"Blow a strip of paper with P plosives",
		"Watch your mouth shape on F in a mirror",
		"Say the Peter Piper sentence five times, slowly",
	},
	"TH": {
		"Practise slipping the tongue between the teeth",
		"Repeat thin, thick, thought ten times",
		"Build sentences with this, that, these, those",
	},
	"Vowels": {
		"Train vowel length against a steady beat",
		"Film your mouth shape and review it",
		"Run the vowel chain a-e-i-o-u in order",
	},
}

// WeeklyBlock is one day of a weekly practice plan.
type WeeklyBlock struct {
	Title     string   `json:"title"`
	Focus     string   `json:"focus"`
	Exercises []string `json:"exercises"`
}

var weeklyPlan = []WeeklyBlock{
	{
		Title: "Monday: core phonemes",
		Focus: "L, R, P, F and TH",
		Exercises: []string{
			"Ten mouth-shape repetitions per phoneme",
			"Check and adjust tongue placement",
			"Contrast similar phoneme pairs",
		},
	},
	{
		Title: "Tuesday: vowels",
		Focus: "Long versus short vowels",
		Exercises: []string{
			"Repeat sheep versus ship",
			"Contrast pool and pull",
			"Work through a vowel chart aloud",
		},
	},
	{
		Title: "Wednesday: linking",
		Focus: "Natural word connections",
		Exercises: []string{
			"Practise 'not at all' as 'no-ta-tall'",
			"Practise 'could you' as 'could-ja'",
			"Spot linking patterns in full sentences",
		},
	},
	{
		Title: "Thursday: intonation",
		Focus: "Sentence intonation and stress",
		Exercises: []string{
			"Practise question intonation",
			"Emphasise the key word of each sentence",
			"Vary intonation with emotion",
		},
	},
	{
		Title: "Friday: speed and rhythm",
		Focus: "Natural speaking pace",
		Exercises: []string{
			"Alternate fast and slow passages",
			"Clap out sentence rhythms",
			"Sing along to build rhythmic feel",
		},
	},
	{
		Title: "Saturday: putting it together",
		Focus: "Real conversation practice",
		Exercises: []string{
			"Practise short dialogue exchanges",
			"Cover expressions for varied situations",
			"Record and analyse your own speech",
		},
	},
	{
		Title: "Sunday: rest and review",
		Focus: "Weekly wrap-up",
		Exercises: []string{
			"Briefly revisit only your weak spots",
			"Set goals for the coming week",
			"Note down your progress",
		},
	},
}

// motivationByStage maps a proficiency stage to encouragement lines. The
// composer picks deterministically from these.
var motivationByStage = [][]string{
	{ // tiers 1-3
		"🚀 Every journey starts with a single step!",
		"🌱 Small seeds grow into big trees; small sounds grow into great speech.",
		"💪 Today's practice is tomorrow's confidence!",
	},
	{ // tiers 4-6
		"⭐ You have already come a long way. Keep going!",
		"📈 Little and often is the fastest route.",
		"🎯 Split the goal into small wins and take them one by one.",
	},
	{ // tiers 7-8
		"🏆 You are closing in on native-like speech. Impressive!",
		"✨ Polish the details and perfection is within reach.",
		"🌟 Your effort is clearly paying off.",
	},
	{ // tiers 9-10
		"🎖️ The road to pronunciation mastery is almost complete!",
		"👑 You are already a role model for other learners.",
		"🚀 At this level you can hold your own anywhere!",
	},
}
