package trend

import "fmt"

// promptTemplate is the Bulgarian TV-presenter instruction the analyzer
// receives. The three numbered asks line up with the three sections
// ParseAnalysis extracts.
const promptTemplate = `Задача: Ти си метеоролог, който представя кратък и достъпен анализ на времето в стил телевизионна прогноза. Говориш топло и разбираемо за обикновени хора. Анализирай метеорологичните данни за древния Хелиополис (днешен Обзор) — Градът на Слънцето, използвайки комбинация от живо видео, исторически и прогнозни данни.

Текущ кадър от Обзор: %s

Исторически данни (вчера): %s

Прогнозни данни (днес и утре): %s

Моля, напиши в топъл и достъпен тон:
1. Какво време е в момента — като за новините, описвайки как изглежда градът и морето.
2. Как текущите условия влияят на усещането на хората в града.
3. Дали денят е "слънчев" за древния Хелиополис (слънчев ден е такъв, в който Слънцето е видимо и грее поне частично).

Важни аспекти:
• Избягвай технически термини
• Говори топло и вдъхновяващо
• Обръщай внимание на морските условия
• При вятър от изток/североизток - морето е по-неспокойно
• Северозападният вятър успокоява вълнението

Отговорът трябва да е на български език, достъпен и вдъхновяващ. Не използвай встъпителни фрази.`

// BuildPrompt assembles the analyzer prompt from the webcam observation
// and the formatted historical and forecast text blocks.
func BuildPrompt(observation, historical, forecast string) string {
	return fmt.Sprintf(promptTemplate, observation, historical, forecast)
}
