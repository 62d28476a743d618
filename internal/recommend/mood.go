package recommend

// moodVariants maps each supported mood to near-synonyms. Picking a random
// synonym per request keeps consecutive prompts from being identical.
var moodVariants = map[string][]string{
	"feliz":       {"alegre", "animado", "eufórico", "contente", "radiante"},
	"triste":      {"melancólico", "nostálgico", "reflexivo", "emocional", "sensível"},
	"animado":     {"energético", "vibrante", "dinâmico", "eletrizante", "estimulante"},
	"relaxado":    {"calmo", "sereno", "tranquilo", "pacífico", "descontraído"},
	"curioso":     {"investigativo", "explorador", "questionador", "descobridor", "inquisitivo"},
	"aventureiro": {"corajoso", "ousado", "intrépido", "audacioso", "explorador"},
}

type MoodResolver struct {
	rng      *Rand
	variants map[string][]string
}

func NewMoodResolver(rng *Rand) *MoodResolver {
	return &MoodResolver{rng: rng, variants: moodVariants}
}

// Variant returns a random synonym for mood, or mood itself when it is
// unknown or has no synonyms.
func (m *MoodResolver) Variant(mood string) string {
	options := m.variants[mood]
	if len(options) == 0 {
		return mood
	}
	return options[m.rng.Intn(len(options))]
}
