package service

import (
	"strings"
	"unicode"

	"github.com/lumi-diary/lumi/backend/internal/types"
)

type trigger struct {
	phrase  string
	replies []string
}

// wholeWordPhrases match only as standalone words; "пока" is a prefix of "покажи".
var wholeWordPhrases = map[string]bool{"пока": true}

// Triggers are tried in order; the first phrase found in the message wins.
var chatTriggers = []trigger{
	{"привет", []string{
		"Привет! Как ты себя сегодня чувствуешь?",
		"Привет! Рада тебя видеть. Расскажешь, как прошёл день?",
	}},
	{"здравствуй", []string{
		"Здравствуйте! Я Lumi. Чем могу помочь?",
	}},
	{"hello", []string{
		"Hello! How are you feeling today?",
	}},
	{"груст", []string{
		"Мне жаль, что тебе грустно. Хочешь рассказать, что случилось?",
		"Грусть бывает у всех. Попробуй записать, что её вызвало, это помогает отпустить.",
	}},
	{"тревог", []string{
		"Попробуй дыхание 4-7-8: вдох на 4 счёта, задержка на 7, выдох на 8.",
		"Тревога часто уходит, если назвать её причину. Что беспокоит тебя сильнее всего?",
	}},
	{"устал", []string{
		"Похоже, тебе нужен отдых. Можешь позволить себе небольшой перерыв?",
		"Усталость копится незаметно. Как ты спишь в последнее время?",
	}},
	{"стресс", []string{
		"При стрессе помогает короткая прогулка или несколько минут тишины.",
		"Попробуй разбить большие задачи на маленькие шаги. Так легче начать.",
	}},
	{"не могу уснуть", []string{
		"Отложи телефон за час до сна и проветри комнату. Это правда помогает.",
	}},
	{"сон", []string{
		"Регулярный режим сна сильно влияет на настроение. Старайся ложиться в одно время.",
	}},
	{"хорошо", []string{
		"Здорово! Запиши этот момент в дневник радостей.",
		"Отлично! Что сделало этот день хорошим?",
	}},
	{"отлично", []string{
		"Прекрасно! Пусть так будет чаще.",
	}},
	{"спасибо", []string{
		"Всегда пожалуйста! Я рядом.",
		"Рада помочь!",
	}},
	{"пока", []string{
		"До встречи! Не забудь отметить настроение.",
	}},
	{"помощь", []string{
		"Я могу подсказать, как справиться со стрессом, усталостью или тревогой. Просто напиши, что тебя беспокоит.",
	}},
}

var genericReplies = []string{
	"Расскажи подробнее, я внимательно слушаю.",
	"Понимаю. Как это влияет на твоё настроение?",
	"Спасибо, что делишься. Что могло бы сейчас тебя поддержать?",
	"Интересно. А что ты чувствуешь по этому поводу?",
}

// Chatbot answers from a fixed trigger table without any external calls.
type Chatbot struct {
	chooser Chooser
}

func NewChatbot(chooser Chooser) *Chatbot {
	if chooser == nil {
		chooser = RandomChooser()
	}
	return &Chatbot{chooser: chooser}
}

// Reply returns a canned answer for message.
func (b *Chatbot) Reply(message string) string {
	text := strings.ToLower(message)
	for _, t := range chatTriggers {
		if t.matches(text) {
			return pick(b.chooser, t.replies)
		}
	}
	return pick(b.chooser, genericReplies)
}

func (t trigger) matches(text string) bool {
	if !wholeWordPhrases[t.phrase] {
		return strings.Contains(text, t.phrase)
	}
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if w == t.phrase {
			return true
		}
	}
	return false
}

// Respond wraps Reply as a fallback chat response.
func (b *Chatbot) Respond(message string) *types.ChatResponse {
	return &types.ChatResponse{Response: b.Reply(message), Source: types.ChatSourceFallback}
}
