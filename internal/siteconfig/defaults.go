package siteconfig

import "github.com/neuroeducatimo/landing/pkg/locale"

func defaultKeywords() map[locale.Code][]Keyword {
	return map[locale.Code][]Keyword{
		locale.RU: {
			{Word: "внимание", Link: "/ru#features"},
			{Word: "память", Link: "/ru#features"},
			{Word: "мышление", Link: "/ru#features"},
			{Word: "когнитивн", Link: "/ru#features"},
			{Word: "диагностика", Link: "/ru#how-it-works"},
			{Word: "тестирование", Link: "/ru#how-it-works"},
			{Word: "платформа", Link: "/ru#hero"},
			{Word: "Neuro Educatimo", Link: "/ru#hero"},
			{Word: "Шульте", Link: "/ru#faq"},
			{Word: "педагог", Link: "/ru#audience"},
			{Word: "учитель", Link: "/ru#audience"},
			{Word: "родител", Link: "/ru#problem-solution"},
		},
		locale.UK: {
			{Word: "увага", Link: "/uk#features"},
			{Word: "пам'ять", Link: "/uk#features"},
			{Word: "мислення", Link: "/uk#features"},
			{Word: "когнітивн", Link: "/uk#features"},
			{Word: "діагностика", Link: "/uk#how-it-works"},
			{Word: "тестування", Link: "/uk#how-it-works"},
			{Word: "платформа", Link: "/uk#hero"},
			{Word: "Neuro Educatimo", Link: "/uk#hero"},
			{Word: "Шульте", Link: "/uk#faq"},
			{Word: "педагог", Link: "/uk#audience"},
			{Word: "вчитель", Link: "/uk#audience"},
			{Word: "батьк", Link: "/uk#problem-solution"},
		},
		locale.EN: {
			{Word: "attention", Link: "/en#features"},
			{Word: "memory", Link: "/en#features"},
			{Word: "thinking", Link: "/en#features"},
			{Word: "cognitive", Link: "/en#features"},
			{Word: "diagnostics", Link: "/en#how-it-works"},
			{Word: "testing", Link: "/en#how-it-works"},
			{Word: "platform", Link: "/en#hero"},
			{Word: "Neuro Educatimo", Link: "/en#hero"},
			{Word: "Schulte", Link: "/en#faq"},
			{Word: "teacher", Link: "/en#audience"},
			{Word: "educator", Link: "/en#audience"},
			{Word: "parent", Link: "/en#problem-solution"},
		},
		locale.PL: {
			{Word: "uwaga", Link: "/pl#features"},
			{Word: "pamięć", Link: "/pl#features"},
			{Word: "myślenie", Link: "/pl#features"},
			{Word: "poznawcz", Link: "/pl#features"},
			{Word: "diagnostyka", Link: "/pl#how-it-works"},
			{Word: "testowanie", Link: "/pl#how-it-works"},
			{Word: "platforma", Link: "/pl#hero"},
			{Word: "Neuro Educatimo", Link: "/pl#hero"},
			{Word: "Schulte", Link: "/pl#faq"},
			{Word: "nauczyciel", Link: "/pl#audience"},
			{Word: "rodzic", Link: "/pl#problem-solution"},
		},
		locale.CS: {
			{Word: "pozornost", Link: "/cs#features"},
			{Word: "paměť", Link: "/cs#features"},
			{Word: "myšlení", Link: "/cs#features"},
			{Word: "kognitivn", Link: "/cs#features"},
			{Word: "diagnostika", Link: "/cs#how-it-works"},
			{Word: "testování", Link: "/cs#how-it-works"},
			{Word: "platforma", Link: "/cs#hero"},
			{Word: "Neuro Educatimo", Link: "/cs#hero"},
			{Word: "Schulte", Link: "/cs#faq"},
			{Word: "učitel", Link: "/cs#audience"},
			{Word: "rodič", Link: "/cs#problem-solution"},
		},
	}
}

// Quiz answers are matched against these patterns to pick the paragraphs of
// the thank-you email.
func defaultQuizSegments() map[locale.Code][]QuizSegment {
	return map[locale.Code][]QuizSegment{
		locale.EN: {
			{ID: "attention", Patterns: []string{"attention", "focus", "concentration"},
				Title: "Attention", Body: "Our Schulte-table and reaction tasks show how students' attention develops over the term."},
			{ID: "memory", Patterns: []string{"memory", "memorize", "remember"},
				Title: "Memory", Body: "Short working-memory sessions help teachers see who needs extra support early."},
			{ID: "diagnostics", Patterns: []string{"diagnostic", "assessment", "testing"},
				Title: "Diagnostics", Body: "Group diagnostics take one lesson and give a report for every class."},
		},
		locale.RU: {
			{ID: "attention", Patterns: []string{"внимани", "концентрац"},
				Title: "Внимание", Body: "Таблицы Шульте и задания на реакцию показывают, как развивается внимание учеников в течение четверти."},
			{ID: "memory", Patterns: []string{"памят", "запомина"},
				Title: "Память", Body: "Короткие упражнения на рабочую память помогают рано увидеть, кому нужна поддержка."},
			{ID: "diagnostics", Patterns: []string{"диагност", "тестирован"},
				Title: "Диагностика", Body: "Групповая диагностика занимает один урок и даёт отчёт по каждому классу."},
		},
		locale.UK: {
			{ID: "attention", Patterns: []string{"уваг", "концентрац"},
				Title: "Увага", Body: "Таблиці Шульте та завдання на реакцію показують, як розвивається увага учнів протягом семестру."},
			{ID: "memory", Patterns: []string{"пам'ят", "запам'ят"},
				Title: "Пам'ять", Body: "Короткі вправи на робочу пам'ять допомагають рано побачити, кому потрібна підтримка."},
			{ID: "diagnostics", Patterns: []string{"діагност", "тестуван"},
				Title: "Діагностика", Body: "Групова діагностика займає один урок і дає звіт по кожному класу."},
		},
		locale.PL: {
			{ID: "attention", Patterns: []string{"uwag", "koncentrac"},
				Title: "Uwaga", Body: "Tablice Schultego i zadania na refleks pokazują, jak rozwija się uwaga uczniów w ciągu semestru."},
			{ID: "memory", Patterns: []string{"pamię", "zapamięt"},
				Title: "Pamięć", Body: "Krótkie ćwiczenia pamięci roboczej pomagają wcześnie zauważyć, kto potrzebuje wsparcia."},
			{ID: "diagnostics", Patterns: []string{"diagnost", "testow"},
				Title: "Diagnostyka", Body: "Diagnostyka grupowa zajmuje jedną lekcję i daje raport dla każdej klasy."},
		},
		locale.CS: {
			{ID: "attention", Patterns: []string{"pozornost", "soustředěn"},
				Title: "Pozornost", Body: "Schulteho tabulky a reakční úlohy ukazují, jak se pozornost žáků vyvíjí během pololetí."},
			{ID: "memory", Patterns: []string{"paměť", "zapamat"},
				Title: "Paměť", Body: "Krátká cvičení pracovní paměti pomáhají včas odhalit, kdo potřebuje podporu."},
			{ID: "diagnostics", Patterns: []string{"diagnost", "testován"},
				Title: "Diagnostika", Body: "Skupinová diagnostika zabere jednu hodinu a přinese zprávu pro každou třídu."},
		},
	}
}
