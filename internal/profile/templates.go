package profile

import "github.com/curiogate/curiogate/internal/models"

// questionBank maps (topic, band) to an ordered sequence of Socratic question
// templates. These are shown to the child before a conversation starts; they
// never influence gating.
var questionBank = map[string]map[models.AgeBand][]string{
	"animals": {
		models.AgeBandYoung: {
			"Why do dogs wag their tails?",
			"How do birds know where to fly in winter?",
			"Why do cats purr?",
		},
		models.AgeBandMiddle: {
			"How do animals talk to each other without words?",
			"Why did dinosaurs disappear but crocodiles didn't?",
			"How do bees find their way back to the hive?",
		},
		models.AgeBandTeen: {
			"Why do some animals work together in groups while others live alone?",
			"How did whales end up in the ocean if their ancestors walked on land?",
			"Could animals ever evolve to be as smart as humans?",
		},
	},
	"space": {
		models.AgeBandYoung: {
			"Why does the moon change shape?",
			"Where does the sun go at night?",
			"Why do stars twinkle?",
		},
		models.AgeBandMiddle: {
			"What would happen if you fell into a black hole?",
			"Why doesn't the moon fall down to Earth?",
			"How do astronauts eat in space?",
		},
		models.AgeBandTeen: {
			"Why can nothing travel faster than light?",
			"What was there before the Big Bang?",
			"How do we know what faraway planets are made of?",
		},
	},
	"technology": {
		models.AgeBandYoung: {
			"How does a phone know where to find videos?",
			"Why do robots need batteries?",
			"How does the TV know what the remote wants?",
		},
		models.AgeBandMiddle: {
			"How does the internet send a message across the world so fast?",
			"How do video games know what buttons you press?",
			"Why do computers use only ones and zeros?",
		},
		models.AgeBandTeen: {
			"How does a computer actually learn from examples?",
			"Why can't we just make batteries that last forever?",
			"What makes some code fast and other code slow?",
		},
	},
	"nature": {
		models.AgeBandYoung: {
			"Why is the sky blue?",
			"Where does rain come from?",
			"Why do leaves fall off trees?",
		},
		models.AgeBandMiddle: {
			"How do plants eat without a mouth?",
			"Why is the ocean salty but rivers aren't?",
			"What makes thunder so loud?",
		},
		models.AgeBandTeen: {
			"Why do hurricanes spin in different directions north and south of the equator?",
			"How do trees move water all the way up to their leaves?",
			"Why are coral reefs dying and can they recover?",
		},
	},
	"science": {
		models.AgeBandYoung: {
			"Why do things fall down and not up?",
			"What makes ice melt?",
			"Why do magnets stick to the fridge?",
		},
		models.AgeBandMiddle: {
			"Why does metal feel colder than wood in the same room?",
			"What is fire actually made of?",
			"How do vaccines teach your body to fight germs?",
		},
		models.AgeBandTeen: {
			"Why does time slow down when you move really fast?",
			"What actually happens inside an atom?",
			"Why can't we just make gold from other metals?",
		},
	},
	"history": {
		models.AgeBandYoung: {
			"How did people build castles without big machines?",
			"What games did kids play long, long ago?",
			"Why did knights wear metal suits?",
		},
		models.AgeBandMiddle: {
			"How did the pyramids get built without trucks or cranes?",
			"How did people navigate the ocean before maps were finished?",
			"Why did people stop using Roman numerals?",
		},
		models.AgeBandTeen: {
			"Why did some ancient civilizations collapse while others survived?",
			"How do we actually know what happened thousands of years ago?",
			"How did money get invented?",
		},
	},
	"art": {
		models.AgeBandYoung: {
			"Why do some songs make us want to dance?",
			"How do crayons get their colors?",
			"Why do we like some pictures more than others?",
		},
		models.AgeBandMiddle: {
			"Why does sad music sound sad?",
			"How did people make paint before stores existed?",
			"Why do cartoons look like they're moving?",
		},
		models.AgeBandTeen: {
			"What makes a piece of music feel tense or peaceful?",
			"Why do different cultures have such different ideas of beauty?",
			"Is a photograph art in the same way a painting is?",
		},
	},
	"social": {
		models.AgeBandYoung: {
			"Why do we share with friends?",
			"Why do people in other places talk differently?",
			"What makes someone a good friend?",
		},
		models.AgeBandMiddle: {
			"Why do different countries have different rules?",
			"Why do we feel embarrassed sometimes?",
			"How do rumors spread so fast?",
		},
		models.AgeBandTeen: {
			"Why do people believe things that aren't true?",
			"What makes a rule fair or unfair?",
			"Why is it hard to change someone's mind with facts?",
		},
	},
	"philosophy": {
		models.AgeBandYoung: {
			"Where do dreams come from?",
			"Why can't we remember being babies?",
			"What makes something real?",
		},
		models.AgeBandMiddle: {
			"If you replaced every part of a toy, is it still the same toy?",
			"Why does time feel fast sometimes and slow other times?",
			"Can anything last forever?",
		},
		models.AgeBandTeen: {
			"How do you know the color you see is the same one I see?",
			"Does infinity actually exist or is it just an idea?",
			"If a choice is predictable, was it really a choice?",
		},
	},
	"general": {
		models.AgeBandYoung: {
			"Why do we have to sleep?",
			"Why do we get hiccups?",
			"Why is yawning contagious?",
		},
		models.AgeBandMiddle: {
			"Why do we forget our dreams so quickly?",
			"Why does your voice sound different in a recording?",
			"Why do we get goosebumps?",
		},
		models.AgeBandTeen: {
			"Why does your brain sometimes go blank under pressure?",
			"Why do we procrastinate even when we know better?",
			"Why do songs get stuck in your head?",
		},
	},
}

// QuestionsFor returns the ordered template sequence for a topic and band.
// Unknown topics fall back to the general bank.
func QuestionsFor(topic string, band models.AgeBand) []string {
	bank, ok := questionBank[topic]
	if !ok {
		bank = questionBank["general"]
	}
	questions, ok := bank[band]
	if !ok {
		questions = bank[models.AgeBandTeen]
	}
	out := make([]string, len(questions))
	copy(out, questions)
	return out
}

// SuggestedQuestions builds the pre-conversation example list for a child:
// one bank per mapped interest in interest order, then the general bank,
// truncated to limit.
func SuggestedQuestions(band models.AgeBand, interests []string, limit int) []string {
	var out []string
	topics := append(MapInterests(interests), "general")
	for _, topic := range topics {
		for _, q := range QuestionsFor(topic, band) {
			out = append(out, q)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}
