package i18n

// Catalog keys
const (
	KeyBlogTitle    = "blog.title"
	KeyBlogSubtitle = "blog.subtitle"
	KeyReadMore     = "blog.read_more"
	KeyBackToBlog   = "blog.back_to_blog"
	KeyNoArticles   = "blog.no_articles"
	KeyMenuBlog     = "blog.menu"

	KeyThanksSubject   = "email.thanks.subject"
	KeyThanksGreeting  = "email.thanks.greeting"
	KeyThanksBody      = "email.thanks.body"
	KeyThanksQuizIntro = "email.thanks.quiz_intro"
	KeyThanksSignoff   = "email.thanks.signoff"
)

// translations maps key → language code → format string.
//
// Supported languages: ru, uk, en, pl, cs.
var translations = map[string]map[string]string{

	// ─── Blog ────────────────────────────────────────────────────────────────
	KeyBlogTitle: {
		"ru": "Блог Neuro Educatimo",
		"uk": "Блог Neuro Educatimo",
		"en": "Neuro Educatimo Blog",
		"pl": "Blog Neuro Educatimo",
		"cs": "Blog Neuro Educatimo",
	},
	KeyBlogSubtitle: {
		"ru": "Последние новости, статьи и исследования в области когнитивного развития.",
		"uk": "Останні новини, статті та дослідження в галузі когнітивного розвитку.",
		"en": "Latest news, articles and research in cognitive development.",
		"pl": "Najnowsze wiadomości, artykuły i badania z zakresu rozwoju poznawczego.",
		"cs": "Nejnovější zprávy, články a výzkum v oblasti kognitivního rozvoje.",
	},
	KeyReadMore: {
		"ru": "Читать далее",
		"uk": "Читати далі",
		"en": "Read more",
		"pl": "Czytaj więcej",
		"cs": "Číst dále",
	},
	KeyBackToBlog: {
		"ru": "Вернуться в блог",
		"uk": "Повернутися до блогу",
		"en": "Back to Blog",
		"pl": "Wróć do bloga",
		"cs": "Zpět na blog",
	},
	KeyNoArticles: {
		"ru": "Статей пока нет.",
		"uk": "Статей поки немає.",
		"en": "No articles yet.",
		"pl": "Brak artykułów.",
		"cs": "Zatím žádné články.",
	},
	KeyMenuBlog: {
		"ru": "Блог",
		"uk": "Блог",
		"en": "Blog",
		"pl": "Blog",
		"cs": "Blog",
	},

	// ─── Thank-you email ─────────────────────────────────────────────────────
	KeyThanksSubject: {
		"ru": "Спасибо за интерес к Neuro Educatimo",
		"uk": "Дякуємо за інтерес до Neuro Educatimo",
		"en": "Thank you for your interest in Neuro Educatimo",
		"pl": "Dziękujemy za zainteresowanie Neuro Educatimo",
		"cs": "Děkujeme za zájem o Neuro Educatimo",
	},
	// %s = organization name
	KeyThanksGreeting: {
		"ru": "Здравствуйте, команда %s!",
		"uk": "Вітаємо, команда %s!",
		"en": "Hello, %s team!",
		"pl": "Dzień dobry, zespole %s!",
		"cs": "Dobrý den, týme %s!",
	},
	KeyThanksBody: {
		"ru": "Мы получили вашу заявку и свяжемся с вами в ближайшее время.",
		"uk": "Ми отримали вашу заявку і зв'яжемося з вами найближчим часом.",
		"en": "We have received your request and will contact you shortly.",
		"pl": "Otrzymaliśmy Twoje zgłoszenie i wkrótce się z Tobą skontaktujemy.",
		"cs": "Obdrželi jsme vaši žádost a brzy vás budeme kontaktovat.",
	},
	KeyThanksQuizIntro: {
		"ru": "По вашим ответам мы подготовили несколько рекомендаций:",
		"uk": "За вашими відповідями ми підготували кілька рекомендацій:",
		"en": "Based on your answers, here are a few recommendations:",
		"pl": "Na podstawie Twoich odpowiedzi przygotowaliśmy kilka rekomendacji:",
		"cs": "Na základě vašich odpovědí jsme připravili několik doporučení:",
	},
	KeyThanksSignoff: {
		"ru": "С уважением,\nкоманда Neuro Educatimo",
		"uk": "З повагою,\nкоманда Neuro Educatimo",
		"en": "Best regards,\nThe Neuro Educatimo team",
		"pl": "Z pozdrowieniami,\nzespół Neuro Educatimo",
		"cs": "S pozdravem,\ntým Neuro Educatimo",
	},
}
