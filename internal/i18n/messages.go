package i18n

type entry struct {
	key    string
	format string
	params []string
}

var english = []entry{
	{"IMPROVE_FINANCIAL_HEALTH.title", "Improve your financial health", nil},
	{"IMPROVE_FINANCIAL_HEALTH.description", "Your financial health score is %s out of 100. Start by building a monthly budget and setting aside part of every paycheck.", []string{"score"}},
	{"MAINTAIN_FINANCIAL_HEALTH.title", "Strengthen your financial position", nil},
	{"MAINTAIN_FINANCIAL_HEALTH.description", "Your financial health score is %s out of 100. A few steady habits will move it into the healthy range.", []string{"score"}},
	{"IMPROVE_EXPENSE_CONTROL.title", "Get your spending under control", nil},
	{"IMPROVE_EXPENSE_CONTROL.description", "Your expense discipline index is %s. Plan large purchases ahead and avoid impulse buys.", []string{"index"}},
	{"OPTIMIZE_EXPENSES.title", "Fine-tune your expenses", nil},
	{"OPTIMIZE_EXPENSES.description", "Your expense discipline index is %s. Spreading spending more evenly across weeks and categories will raise it.", []string{"index"}},
	{"INCREASE_RETIREMENT_SAVINGS.title", "Close your retirement gap", nil},
	{"INCREASE_RETIREMENT_SAVINGS.description", "You are %s %s short of your retirement goal. Saving about %s %s a month closes the gap.", []string{"gap", "currency", "monthlyNeeded", "currency"}},
	{"OPTIMIZE_RETIREMENT_PLAN.title", "Review your retirement plan", nil},
	{"OPTIMIZE_RETIREMENT_PLAN.description", "Your retirement risk level is %s. Revisit your target age and contributions.", []string{"risk"}},
	{"INCREASE_SAVINGS_RATE.title", "Save more than your peers", nil},
	{"INCREASE_SAVINGS_RATE.description", "Your savings rate is %s percentage points below people with a similar income.", []string{"delta"}},
	{"DIVERSIFY_INCOME.title", "Diversify your income", nil},
	{"DIVERSIFY_INCOME.description", "You have %s income source(s). Additional income streams make your finances more resilient.", []string{"sources"}},
	{"BUDGET_EXCEEDED.title", "Budget exceeded", nil},
	{"BUDGET_EXCEEDED.description", "You spent %s %s in \"%s\" against a limit of %s %s.", []string{"spent", "currency", "wallet", "limit", "currency"}},
	{"BUDGET_APPROACHING_LIMIT.title", "Budget almost used up", nil},
	{"BUDGET_APPROACHING_LIMIT.description", "You spent %s %s in \"%s\" out of a limit of %s %s.", []string{"spent", "currency", "wallet", "limit", "currency"}},
	{"REVIEW_SUBSCRIPTIONS.title", "Review your subscriptions", nil},
	{"REVIEW_SUBSCRIPTIONS.description", "You paid for %s subscriptions totalling %s %s. Cancel the ones you no longer use.", []string{"count", "total", "currency"}},
	{"REDUCE_DINING_OUT.title", "Eat out less often", nil},
	{"REDUCE_DINING_OUT.description", "You dined out %s times for %s %s. Cooking at home a few more times a week adds up.", []string{"count", "total", "currency"}},
	{"BUILD_EMERGENCY_FUND.title", "Build an emergency fund", nil},
	{"BUILD_EMERGENCY_FUND.description", "Your monthly savings equal %s months of expenses. Aim for at least three.", []string{"months"}},

	{"TIP_SUBSCRIPTION_DETECTED.text", "Recurring %s payment to %s: %s %s. Make sure you still need it.", []string{"frequency", "merchant", "amount", "currency"}},
	{"TIP_SMALL_EXPENSES.text", "%s small purchases added up to %s %s.", []string{"count", "total", "currency"}},
	{"TIP_NO_SAVINGS.text", "You spent %s %s more than you earned.", []string{"overspend", "currency"}},
	{"TIP_NO_INCOME_RECORDED.text", "No income recorded yet. Add your income to get a complete picture.", nil},
	{"TIP_DOMINANT_CATEGORY.text", "%s accounts for %s%% of your spending.", []string{"category", "share"}},

	{"RETIREMENT_ON_TRACK.text", "You are on track for retirement.", nil},
	{"RETIREMENT_REVIEW_ANNUALLY.text", "Review your retirement plan once a year.", nil},
	{"RETIREMENT_KEEP_CONTRIBUTIONS.text", "Keep your current contributions going.", nil},
	{"RETIREMENT_INCREASE_SAVINGS.text", "Increase your monthly retirement savings.", nil},
	{"RETIREMENT_REDUCE_EXPENSES.text", "Reduce current expenses to free up savings.", nil},
	{"RETIREMENT_CONSIDER_LATER_AGE.text", "Consider retiring a few years later.", nil},
	{"RETIREMENT_ADDITIONAL_INCOME.text", "Look for additional sources of income.", nil},
	{"RETIREMENT_SEEK_PROFESSIONAL_ADVICE.text", "Talk to a financial advisor.", nil},
	{"RETIREMENT_ALREADY_REACHED.text", "You have reached your retirement age.", nil},
}

var russian = []entry{
	{"IMPROVE_FINANCIAL_HEALTH.title", "Улучшите финансовое здоровье", nil},
	{"IMPROVE_FINANCIAL_HEALTH.description", "Ваш индекс финансового здоровья %s из 100. Составьте месячный бюджет и откладывайте часть каждого дохода.", []string{"score"}},
	{"MAINTAIN_FINANCIAL_HEALTH.title", "Укрепите финансовое положение", nil},
	{"MAINTAIN_FINANCIAL_HEALTH.description", "Ваш индекс финансового здоровья %s из 100. Несколько устойчивых привычек выведут его в здоровую зону.", []string{"score"}},
	{"IMPROVE_EXPENSE_CONTROL.title", "Возьмите расходы под контроль", nil},
	{"IMPROVE_EXPENSE_CONTROL.description", "Ваш индекс дисциплины расходов %s. Планируйте крупные покупки заранее и избегайте импульсивных трат.", []string{"index"}},
	{"OPTIMIZE_EXPENSES.title", "Оптимизируйте расходы", nil},
	{"OPTIMIZE_EXPENSES.description", "Ваш индекс дисциплины расходов %s. Более равномерные траты по неделям и категориям повысят его.", []string{"index"}},
	{"INCREASE_RETIREMENT_SAVINGS.title", "Сократите пенсионный разрыв", nil},
	{"INCREASE_RETIREMENT_SAVINGS.description", "До пенсионной цели не хватает %s %s. Откладывайте около %s %s в месяц.", []string{"gap", "currency", "monthlyNeeded", "currency"}},
	{"OPTIMIZE_RETIREMENT_PLAN.title", "Пересмотрите пенсионный план", nil},
	{"OPTIMIZE_RETIREMENT_PLAN.description", "Уровень пенсионного риска: %s. Пересмотрите возраст выхода на пенсию и размер взносов.", []string{"risk"}},
	{"INCREASE_SAVINGS_RATE.title", "Сберегайте больше", nil},
	{"INCREASE_SAVINGS_RATE.description", "Ваша норма сбережений на %s п.п. ниже, чем у людей с похожим доходом.", []string{"delta"}},
	{"DIVERSIFY_INCOME.title", "Диверсифицируйте доходы", nil},
	{"DIVERSIFY_INCOME.description", "Источников дохода: %s. Дополнительные источники делают финансы устойчивее.", []string{"sources"}},
	{"BUDGET_EXCEEDED.title", "Бюджет превышен", nil},
	{"BUDGET_EXCEEDED.description", "Потрачено %s %s в «%s» при лимите %s %s.", []string{"spent", "currency", "wallet", "limit", "currency"}},
	{"BUDGET_APPROACHING_LIMIT.title", "Бюджет почти исчерпан", nil},
	{"BUDGET_APPROACHING_LIMIT.description", "Потрачено %s %s в «%s» из лимита %s %s.", []string{"spent", "currency", "wallet", "limit", "currency"}},
	{"REVIEW_SUBSCRIPTIONS.title", "Проверьте подписки", nil},
	{"REVIEW_SUBSCRIPTIONS.description", "Оплачено подписок: %s на сумму %s %s. Отмените те, которыми не пользуетесь.", []string{"count", "total", "currency"}},
	{"REDUCE_DINING_OUT.title", "Реже ешьте вне дома", nil},
	{"REDUCE_DINING_OUT.description", "Посещений кафе и ресторанов: %s на сумму %s %s.", []string{"count", "total", "currency"}},
	{"BUILD_EMERGENCY_FUND.title", "Создайте резервный фонд", nil},
	{"BUILD_EMERGENCY_FUND.description", "Ежемесячные сбережения равны %s мес. расходов. Стремитесь хотя бы к трём.", []string{"months"}},

	{"TIP_SUBSCRIPTION_DETECTED.text", "Регулярный платёж (%s) в %s: %s %s. Убедитесь, что он всё ещё нужен.", []string{"frequency", "merchant", "amount", "currency"}},
	{"TIP_SMALL_EXPENSES.text", "Мелкие покупки (%s шт.) составили %s %s.", []string{"count", "total", "currency"}},
	{"TIP_NO_SAVINGS.text", "Расходы превысили доходы на %s %s.", []string{"overspend", "currency"}},
	{"TIP_NO_INCOME_RECORDED.text", "Доходы пока не добавлены. Укажите их, чтобы получить полную картину.", nil},
	{"TIP_DOMINANT_CATEGORY.text", "На категорию %s приходится %s%% расходов.", []string{"category", "share"}},

	{"RETIREMENT_ON_TRACK.text", "Вы на верном пути к пенсии.", nil},
	{"RETIREMENT_REVIEW_ANNUALLY.text", "Пересматривайте пенсионный план раз в год.", nil},
	{"RETIREMENT_KEEP_CONTRIBUTIONS.text", "Продолжайте текущие взносы.", nil},
	{"RETIREMENT_INCREASE_SAVINGS.text", "Увеличьте ежемесячные пенсионные накопления.", nil},
	{"RETIREMENT_REDUCE_EXPENSES.text", "Сократите текущие расходы, чтобы больше откладывать.", nil},
	{"RETIREMENT_CONSIDER_LATER_AGE.text", "Рассмотрите более поздний выход на пенсию.", nil},
	{"RETIREMENT_ADDITIONAL_INCOME.text", "Найдите дополнительные источники дохода.", nil},
	{"RETIREMENT_SEEK_PROFESSIONAL_ADVICE.text", "Обратитесь к финансовому консультанту.", nil},
	{"RETIREMENT_ALREADY_REACHED.text", "Вы уже достигли пенсионного возраста.", nil},
}
