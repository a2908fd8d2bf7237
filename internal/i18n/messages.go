package i18n

var messagesRU = map[string]string{
	"nav.catalog":  "Каталог",
	"nav.features": "Возможности",
	"nav.account":  "Аккаунт",
	"nav.signin":   "Войти",
	"nav.signup":   "Регистрация",
	"nav.signout":  "Выйти",
	"nav.stats":    "Статистика",
	"footer.build": "Сборка %s",

	"search.title":       "Поиск по каталогу",
	"search.placeholder": "Название, артикул или категория",
	"search.prompt":      "Начните вводить запрос (минимум %d символа), чтобы увидеть результаты.",
	"search.loading":     "Загружаем результаты…",
	"search.empty":       "По запросу ничего не найдено. Попробуйте изменить формулировку.",
	"search.unavailable": "Поиск временно недоступен. Проверьте настройки Algolia.",
	"search.all":         "Все категории",
	"search.total":       "Найдено: %d",

	"home.title":           "Лёгкая витрина с Algolia-поиском",
	"home.subtitle":        "API на Django, Algolia-индексация, серверный рендеринг на Go, готовый Docker-стек.",
	"home.popular":         "Популярные товары",
	"home.popular_hint":    "Список подгружается напрямую из Django API. Настройте выдачу под ваши бизнес-метрики.",
	"home.features":        "Что уже реализовано",
	"home.feature_catalog": "Управление товарами, категориями и заказами через админку и API.",
	"home.feature_search":  "Мгновенная выдача, фильтры по категориям, ранжирование и подсветка.",
	"home.to_catalog":      "Каталог",

	"catalog.title":      "Каталог",
	"catalog.subtitle":   "Синхронизируется из Django. Используйте поиск в шапке сайта для мгновенной фильтрации.",
	"catalog.load_more":  "Показать ещё",
	"catalog.loading":    "Загружаем...",
	"catalog.empty":      "Товары не найдены.",
	"catalog.categories": "Категории",
	"catalog.all":        "Все товары",

	"product.no_photo":     "Нет фото",
	"product.sku":          "Артикул: %s",
	"product.in_stock":     "В наличии: %d шт.",
	"product.out_of_stock": "Нет в наличии",
	"product.category":     "Категория: %s",
	"product.not_found":    "Товар не найден",
	"product.back":         "Вернуться в каталог",

	"reviews.title":          "Отзывы",
	"reviews.summary":        "Средняя оценка %s ★ · Одобренных отзывов: %d",
	"reviews.no_rating":      "—",
	"reviews.empty":          "Пока нет одобренных отзывов",
	"reviews.empty_hint":     "Будьте первым, кто поделится впечатлением о товаре.",
	"reviews.write":          "Написать отзыв",
	"reviews.signin":         "Войдите",
	"reviews.signin_hint":    "или зарегистрируйтесь, чтобы оставить отзыв.",
	"reviews.new":            "Новый отзыв",
	"reviews.edit":           "Изменить отзыв",
	"reviews.rating":         "Оценка",
	"reviews.heading":        "Заголовок",
	"reviews.heading_hint":   "Коротко о впечатлении",
	"reviews.body":           "Отзыв",
	"reviews.body_hint":      "Поделитесь опытом покупки и использования",
	"reviews.submit":         "Отправить",
	"reviews.submitting":     "Сохраняем...",
	"reviews.cancel":         "Отмена",
	"reviews.note":           "Отправленный отзыв попадёт на модерацию. О публикации мы сообщим письмом.",
	"reviews.verified":       "Проверенная покупка",
	"reviews.edit_action":    "Редактировать",
	"reviews.delete_action":  "Удалить",
	"reviews.delete_confirm": "Удалить отзыв?",
	"reviews.delete_yes":     "Да, удалить",
	"reviews.load_more":      "Показать ещё",
	"reviews.load_failed":    "Не удалось загрузить отзывы.",
	"reviews.save_failed":    "Не удалось сохранить отзыв.",
	"reviews.delete_failed":  "Не удалось удалить отзыв.",
	"reviews.busy":           "Отзыв уже сохраняется, подождите.",

	"moderation.approved": "Одобрен",
	"moderation.pending":  "На модерации",
	"moderation.rejected": "Отклонён",

	"auth.signin_title":         "Вход в аккаунт",
	"auth.signin_subtitle":      "Используйте email или логин и пароль, указанные при регистрации.",
	"auth.identifier":           "Логин или email",
	"auth.password":             "Пароль",
	"auth.password_confirm":     "Повторите пароль",
	"auth.new_password":         "Новый пароль",
	"auth.signin_submit":        "Войти",
	"auth.forgot_link":          "Забыли пароль?",
	"auth.no_account":           "Нет аккаунта?",
	"auth.signup_link":          "Зарегистрируйтесь",
	"auth.signin_required":      "Введите логин и пароль.",
	"auth.signin_failed":        "Не удалось войти. Проверьте данные.",
	"auth.signup_title":         "Регистрация",
	"auth.signup_subtitle":      "Создайте аккаунт, чтобы оформлять заказы и управлять профилем.",
	"auth.username":             "Логин",
	"auth.email":                "Email",
	"auth.first_name":           "Имя",
	"auth.last_name":            "Фамилия",
	"auth.signup_submit":        "Зарегистрироваться",
	"auth.signup_failed":        "Не удалось создать аккаунт. Попробуйте ещё раз.",
	"auth.signup_signin_failed": "Аккаунт создан, но вход не выполнен. Попробуйте войти вручную.",
	"auth.have_account":         "Уже есть аккаунт?",
	"auth.signin_link":          "Войдите",
	"auth.forgot_title":         "Сброс пароля",
	"auth.forgot_subtitle":      "Укажите email, и мы отправим ссылку для сброса пароля.",
	"auth.forgot_submit":        "Отправить ссылку",
	"auth.forgot_failed":        "Не удалось отправить письмо. Попробуйте позже.",
	"auth.forgot_sent_title":    "Проверьте почту",
	"auth.forgot_sent":          "Если аккаунт с таким email существует, мы отправили на него ссылку для сброса пароля.",
	"auth.back_to_signin":       "Вернуться ко входу",
	"auth.reset_title":          "Сброс пароля",
	"auth.reset_subtitle":       "Введите новый пароль для вашего аккаунта.",
	"auth.reset_submit":         "Изменить пароль",
	"auth.reset_failed":         "Не удалось изменить пароль.",
	"auth.reset_invalid":        "Недействительная ссылка для сброса.",
	"auth.reset_invalid_title":  "Ссылка недействительна",
	"auth.reset_invalid_hint":   "Проверьте, что вы перешли по актуальной ссылке из письма.",
	"auth.reset_done_title":     "Пароль обновлён",
	"auth.reset_done":           "Теперь вы можете войти, используя новый пароль.",

	"account.title":    "Аккаунт",
	"account.subtitle": "Обновите личные данные и адрес доставки по умолчанию.",
	"account.phone":    "Телефон",
	"account.address":  "Адрес доставки",
	"account.city":     "Город",
	"account.postcode": "Индекс",
	"account.country":  "Страна",
	"account.save":     "Сохранить",
	"account.saved":    "Профиль сохранён.",
	"account.failed":   "Не удалось сохранить профиль.",
	"account.greeting": "Здравствуйте, %s!",

	"stats.title":        "Статистика магазина",
	"stats.date_from":    "С",
	"stats.date_to":      "По",
	"stats.apply":        "Показать",
	"stats.orders":       "Заказы",
	"stats.revenue":      "Выручка",
	"stats.top_products": "Популярные товары",
	"stats.quantity":     "Продано, шт.",
	"stats.currency":     "Валюта",
	"stats.product":      "Товар",
	"stats.sales":        "Продажи",
	"stats.failed":       "Не удалось загрузить статистику: %s",
	"stats.no_data":      "Нет данных за выбранный период.",

	"checkout.title":    "Спасибо!",
	"checkout.order":    "Заказ №%s оформлен.",
	"checkout.placed":   "Ваш заказ оформлен.",
	"checkout.contact":  "Мы скоро свяжемся с вами, чтобы подтвердить детали.",
	"checkout.continue": "Продолжить покупки",
	"checkout.home":     "На главную",

	"error.not_found":      "Страница не найдена",
	"error.not_found_hint": "Проверьте адрес или вернитесь в каталог.",
	"error.internal":       "Что-то пошло не так",
	"error.internal_hint":  "Попробуйте обновить страницу чуть позже.",

	"validation.required":           "Заполните поле.",
	"validation.email_required":     "Введите email.",
	"validation.email":              "Введите корректный email.",
	"validation.passwords_mismatch": "Пароли не совпадают.",
	"validation.password_min":       "Пароль должен содержать не менее %s символов.",
	"validation.min":                "Минимальная длина: %s.",
	"validation.max":                "Максимальная длина: %s.",
	"validation.rating":             "Оценка должна быть от 1 до 5.",
	"validation.invalid":            "Некорректное значение.",
}

var messagesEN = map[string]string{
	"nav.catalog":  "Catalog",
	"nav.features": "Features",
	"nav.account":  "Account",
	"nav.signin":   "Sign in",
	"nav.signup":   "Sign up",
	"nav.signout":  "Sign out",
	"nav.stats":    "Stats",
	"footer.build": "Build %s",

	"search.title":       "Search the catalog",
	"search.placeholder": "Name, SKU or category",
	"search.prompt":      "Type at least %d characters to see results.",
	"search.loading":     "Loading results…",
	"search.empty":       "Nothing matched your query. Try rephrasing it.",
	"search.unavailable": "Search is temporarily unavailable. Check the Algolia settings.",
	"search.all":         "All categories",
	"search.total":       "Found: %d",

	"home.title":           "A lightweight storefront with Algolia search",
	"home.subtitle":        "Django API, Algolia indexing, server rendering in Go, a ready Docker stack.",
	"home.popular":         "Popular products",
	"home.popular_hint":    "Loaded straight from the Django API. Tune the listing to your business metrics.",
	"home.features":        "What is already there",
	"home.feature_catalog": "Manage products, categories and orders through the admin and the API.",
	"home.feature_search":  "Instant results, category filters, ranking and highlighting.",
	"home.to_catalog":      "Catalog",

	"catalog.title":      "Catalog",
	"catalog.subtitle":   "Synchronised from Django. Use the search in the header for instant filtering.",
	"catalog.load_more":  "Show more",
	"catalog.loading":    "Loading...",
	"catalog.empty":      "No products found.",
	"catalog.categories": "Categories",
	"catalog.all":        "All products",

	"product.no_photo":     "No photo",
	"product.sku":          "SKU: %s",
	"product.in_stock":     "In stock: %d",
	"product.out_of_stock": "Out of stock",
	"product.category":     "Category: %s",
	"product.not_found":    "Product not found",
	"product.back":         "Back to catalog",

	"reviews.title":          "Reviews",
	"reviews.summary":        "Average rating %s ★ · Approved reviews: %d",
	"reviews.no_rating":      "—",
	"reviews.empty":          "No approved reviews yet",
	"reviews.empty_hint":     "Be the first to share your impression of this product.",
	"reviews.write":          "Write a review",
	"reviews.signin":         "Sign in",
	"reviews.signin_hint":    "or sign up to leave a review.",
	"reviews.new":            "New review",
	"reviews.edit":           "Edit review",
	"reviews.rating":         "Rating",
	"reviews.heading":        "Title",
	"reviews.heading_hint":   "Your impression in a few words",
	"reviews.body":           "Review",
	"reviews.body_hint":      "Share your experience of buying and using it",
	"reviews.submit":         "Submit",
	"reviews.submitting":     "Saving...",
	"reviews.cancel":         "Cancel",
	"reviews.note":           "Submitted reviews go to moderation. We will email you once it is published.",
	"reviews.verified":       "Verified purchase",
	"reviews.edit_action":    "Edit",
	"reviews.delete_action":  "Delete",
	"reviews.delete_confirm": "Delete this review?",
	"reviews.delete_yes":     "Yes, delete",
	"reviews.load_more":      "Show more",
	"reviews.load_failed":    "Could not load reviews.",
	"reviews.save_failed":    "Could not save the review.",
	"reviews.delete_failed":  "Could not delete the review.",
	"reviews.busy":           "The review is already being saved, please wait.",

	"moderation.approved": "Approved",
	"moderation.pending":  "Pending moderation",
	"moderation.rejected": "Rejected",

	"auth.signin_title":         "Sign in",
	"auth.signin_subtitle":      "Use the email or username and password you registered with.",
	"auth.identifier":           "Username or email",
	"auth.password":             "Password",
	"auth.password_confirm":     "Repeat password",
	"auth.new_password":         "New password",
	"auth.signin_submit":        "Sign in",
	"auth.forgot_link":          "Forgot your password?",
	"auth.no_account":           "No account yet?",
	"auth.signup_link":          "Sign up",
	"auth.signin_required":      "Enter your username and password.",
	"auth.signin_failed":        "Could not sign in. Check your details.",
	"auth.signup_title":         "Sign up",
	"auth.signup_subtitle":      "Create an account to place orders and manage your profile.",
	"auth.username":             "Username",
	"auth.email":                "Email",
	"auth.first_name":           "First name",
	"auth.last_name":            "Last name",
	"auth.signup_submit":        "Sign up",
	"auth.signup_failed":        "Could not create the account. Please try again.",
	"auth.signup_signin_failed": "The account was created but signing in failed. Please sign in manually.",
	"auth.have_account":         "Already have an account?",
	"auth.signin_link":          "Sign in",
	"auth.forgot_title":         "Reset password",
	"auth.forgot_subtitle":      "Enter your email and we will send you a reset link.",
	"auth.forgot_submit":        "Send link",
	"auth.forgot_failed":        "Could not send the email. Please try later.",
	"auth.forgot_sent_title":    "Check your mail",
	"auth.forgot_sent":          "If an account with this email exists, we have sent it a password reset link.",
	"auth.back_to_signin":       "Back to sign in",
	"auth.reset_title":          "Reset password",
	"auth.reset_subtitle":       "Enter a new password for your account.",
	"auth.reset_submit":         "Change password",
	"auth.reset_failed":         "Could not change the password.",
	"auth.reset_invalid":        "Invalid reset link.",
	"auth.reset_invalid_title":  "Link is invalid",
	"auth.reset_invalid_hint":   "Make sure you followed the latest link from the email.",
	"auth.reset_done_title":     "Password updated",
	"auth.reset_done":           "You can now sign in with the new password.",

	"account.title":    "Account",
	"account.subtitle": "Update personal details and your default shipping address.",
	"account.phone":    "Phone",
	"account.address":  "Shipping address",
	"account.city":     "City",
	"account.postcode": "Postcode",
	"account.country":  "Country",
	"account.save":     "Save",
	"account.saved":    "Profile saved.",
	"account.failed":   "Could not save the profile.",
	"account.greeting": "Hello, %s!",

	"stats.title":        "Store statistics",
	"stats.date_from":    "From",
	"stats.date_to":      "To",
	"stats.apply":        "Show",
	"stats.orders":       "Orders",
	"stats.revenue":      "Revenue",
	"stats.top_products": "Top products",
	"stats.quantity":     "Units sold",
	"stats.currency":     "Currency",
	"stats.product":      "Product",
	"stats.sales":        "Sales",
	"stats.failed":       "Could not load statistics: %s",
	"stats.no_data":      "No data for the selected period.",

	"checkout.title":    "Thank you!",
	"checkout.order":    "Order #%s has been placed.",
	"checkout.placed":   "Your order has been placed.",
	"checkout.contact":  "We will contact you soon to confirm the details.",
	"checkout.continue": "Continue shopping",
	"checkout.home":     "Go to homepage",

	"error.not_found":      "Page not found",
	"error.not_found_hint": "Check the address or go back to the catalog.",
	"error.internal":       "Something went wrong",
	"error.internal_hint":  "Try reloading the page a bit later.",

	"validation.required":           "This field is required.",
	"validation.email_required":     "Enter your email.",
	"validation.email":              "Enter a valid email.",
	"validation.passwords_mismatch": "Passwords do not match.",
	"validation.password_min":       "The password must be at least %s characters long.",
	"validation.min":                "Minimum length: %s.",
	"validation.max":                "Maximum length: %s.",
	"validation.rating":             "The rating must be between 1 and 5.",
	"validation.invalid":            "Invalid value.",
}
