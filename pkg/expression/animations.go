package expression

// animationTable maps each category to candidate NAO animation paths.
// Condensed from the robot's stock animation library; selection within a
// category is randomized for variety, the category itself is deterministic.
var animationTable = map[Category][]string{
	CategoryNeutral: {
		"animations/Stand/BodyTalk/BodyLanguage/NAO/Center_Neutral_AFF_01",
		"animations/Stand/BodyTalk/BodyLanguage/NAO/Center_Neutral_AFF_05",
		"animations/Stand/BodyTalk/BodyLanguage/NAO/Left_Neutral_AFF_02",
		"animations/Stand/BodyTalk/BodyLanguage/NAO/Right_Slow_AFF_01",
		"animations/Stand/Self & others/NAO/Center_Neutral_SAO_02",
		"animations/Stand/Self & others/NAO/Right_Neutral_SAO_03",
	},
	CategoryQuestion: {
		"animations/Stand/Question/NAO/Center_Neutral_QUE_01",
		"animations/Stand/Question/NAO/Left_Strong_QUE_02",
		"animations/Stand/Gestures/Thinking_1",
		"animations/Stand/Gestures/Thinking_2",
	},
	CategoryNegation: {
		"animations/Stand/Negation/NAO/Center_Neutral_NEG_01",
		"animations/Stand/Negation/NAO/Center_Strong_NEG_05",
		"animations/Stand/Negation/NAO/Left_Strong_NEG_02",
	},
	CategoryAffirmation: {
		"animations/Stand/Gestures/Yes_1",
		"animations/Stand/Gestures/Yes_2",
		"animations/Stand/BodyTalk/BodyLanguage/NAO/Center_Strong_AFF_01",
	},
	CategoryEnjoyment: {
		"animations/Stand/Emotions/Positive/Happy_1",
		"animations/Stand/Emotions/Positive/Laugh_2",
		"animations/Stand/Gestures/Enthusiastic_3",
		"animations/Stand/Gestures/Joy_1",
	},
	CategoryAnger: {
		"animations/Stand/Emotions/Negative/Angry_1",
		"animations/Stand/Emotions/Negative/Frustrated_1",
	},
	CategoryDisgust: {
		"animations/Stand/Emotions/Negative/Disappointed_1",
		"animations/Stand/Gestures/No_3",
	},
	CategorySadness: {
		"animations/Stand/Emotions/Negative/Sad_1",
		"animations/Stand/Emotions/Negative/Sad_2",
	},
	CategoryFear: {
		"animations/Stand/Emotions/Negative/Fear_1",
		"animations/Stand/Emotions/Negative/Fearful_1",
	},
	CategorySurprise: {
		"animations/Stand/Emotions/Neutral/Surprise_1",
		"animations/Stand/Emotions/Neutral/Surprise_2",
		"animations/Stand/Gestures/LookingAround_1",
	},
}

// motionTags maps abstract motion tags from directives to animation paths.
// Tags containing a slash are treated as full paths already.
var motionTags = map[string]string{
	"wave":                "animations/Stand/Gestures/Hey_1",
	"open_arms_welcoming": "animations/Stand/Gestures/Hey_1",
	"look_around_curious": "animations/Stand/Gestures/LookingAround_1",
	"lean_in_excited":     "animations/Stand/Gestures/Excited_1",
	"thinking_pose_story": "animations/Stand/Gestures/Thinking_1",
	"excited_nod":         "animations/Stand/Gestures/Yes_1",
	"happy_dance":         "animations/Stand/Emotions/Positive/Happy_1",
	"point_to_audience":   "animations/Stand/Gestures/You_3",
	"point_to_self":       "animations/Stand/Gestures/Me_2",
	"begging":             "animations/Stand/Gestures/Please_3",
	"scary":               "animations/Stand/Emotions/Negative/Fear_1",
}

// AnimationPath resolves a gesture identifier to a playable animation path.
// Full paths pass through; known motion tags resolve via the tag table;
// unknown tags return the identifier unchanged so the actuation layer can
// decide how to handle it.
func AnimationPath(id string) string {
	if id == "" {
		return ""
	}
	for _, c := range id {
		if c == '/' {
			return id
		}
	}
	if path, ok := motionTags[id]; ok {
		return path
	}
	return id
}
