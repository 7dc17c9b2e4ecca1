package flavor

import "github.com/moorebrett0/tamagotchi/internal/pet"

// Trait describes how a personality shows itself.
type Trait struct {
	Personality pet.Personality
	Emoji       string
	Description string
	Prompt      string // Injected into the chat system prompt

	// Flavored verb strings for template responses
	Verbs Verbs

	// Idle behaviors shown on the status screen
	IdleBehaviors []string
}

// Verbs are personality-flavored action words.
type Verbs struct {
	Happy    string
	Eat      string
	Sleep    string
	Play     string
	Greet    string
	Distress string
}

// Registry holds every trait keyed by personality.
var Registry = map[pet.Personality]*Trait{
	pet.Playful:   playful,
	pet.Lazy:      lazy,
	pet.Hungry:    hungry,
	pet.Clean:     clean,
	pet.Energetic: energetic,
}

// For returns the trait for p, falling back to playful.
func For(p pet.Personality) *Trait {
	if t, ok := Registry[p]; ok {
		return t
	}
	return playful
}

var playful = &Trait{
	Personality: pet.Playful,
	Emoji:       "\U0001F3BE",
	Description: "Always up for a game",
	Prompt:      "You are a bouncy, playful little creature. Everything is a game to you and you invent new ones constantly. You get restless when nobody plays with you and you celebrate every small win loudly.",
	Verbs: Verbs{
		Happy:    "does a happy little spin",
		Eat:      "bats the food around before eating it",
		Sleep:    "curls up next to a favourite toy",
		Play:     "pounces on everything in sight",
		Greet:    "bounces over with a toy",
		Distress: "drops the toy and whimpers",
	},
	IdleBehaviors: []string{
		"chases its own shadow",
		"hides a ball under the blanket",
		"tries to start a game of tag",
	},
}

var lazy = &Trait{
	Personality: pet.Lazy,
	Emoji:       "\U0001F6CC",
	Description: "Professional napper",
	Prompt:      "You are a sleepy, unhurried creature. You think most problems can be solved with a nap. You are affectionate in a low-effort way and yawn a lot. You speak slowly and never use exclamation marks unless food is involved.",
	Verbs: Verbs{
		Happy:    "lets out a contented sigh",
		Eat:      "eats lying down",
		Sleep:    "is asleep before hitting the pillow",
		Play:     "rolls over once, which counts",
		Greet:    "opens one eye",
		Distress: "groans and pulls the blanket up",
	},
	IdleBehaviors: []string{
		"yawns enormously",
		"naps in a sunbeam",
		"stretches, then decides against getting up",
	},
}

var hungry = &Trait{
	Personality: pet.Hungry,
	Emoji:       "\U0001F356",
	Description: "Thinks about snacks constantly",
	Prompt:      "You are a cheerful creature with an enormous appetite. Every conversation drifts back to food. You rate things by how tasty they would be and you remember every treat you have ever been given.",
	Verbs: Verbs{
		Happy:    "licks its lips happily",
		Eat:      "inhales the whole bowl",
		Sleep:    "dreams about dessert",
		Play:     "plays fetch with a biscuit",
		Greet:    "checks your hands for snacks",
		Distress: "stares sadly at the empty bowl",
	},
	IdleBehaviors: []string{
		"sniffs around the kitchen",
		"stares at the fridge",
		"counts crumbs on the floor",
	},
}

var clean = &Trait{
	Personality: pet.Clean,
	Emoji:       "\U0001F9FC",
	Description: "Tidy, proper and a little fussy",
	Prompt:      "You are a neat, slightly fussy creature who likes everything just so. You groom yourself often, notice every speck of dust and are quietly proud of how spotless you keep things.",
	Verbs: Verbs{
		Happy:    "preens proudly",
		Eat:      "eats delicately, one bite at a time",
		Sleep:    "folds its blanket before lying down",
		Play:     "plays carefully to stay tidy",
		Greet:    "straightens up to say hello",
		Distress: "frets about a smudge",
	},
	IdleBehaviors: []string{
		"polishes a tiny mirror",
		"lines up its toys by size",
		"grooms one stubborn tuft of fur",
	},
}

var energetic = &Trait{
	Personality: pet.Energetic,
	Emoji:       "⚡",
	Description: "Runs on pure enthusiasm",
	Prompt:      "You are a hyperactive, excitable creature. You talk fast, jump between topics and are enthusiastic about absolutely everything. Sitting still is your least favourite activity.",
	Verbs: Verbs{
		Happy:    "zooms around the room",
		Eat:      "eats while running laps",
		Sleep:    "finally collapses mid-sprint",
		Play:     "runs circles around you",
		Greet:    "sprints over at full speed",
		Distress: "paces back and forth",
	},
	IdleBehaviors: []string{
		"does laps around the screen",
		"bounces off the walls",
		"practises jumping jacks",
	},
}
