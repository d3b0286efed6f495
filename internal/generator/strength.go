package generator

// Level - грубая оценка стойкости пароля.
type Level string

const (
	Weak   Level = "weak"
	Medium Level = "medium"
	Strong Level = "strong"
)

type classes struct {
	upper, lower, digit, other bool
}

func classify(password string) classes {
	var c classes
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= '0' && r <= '9':
			c.digit = true
		default:
			c.other = true
		}
	}
	return c
}

// Strength возвращает уровень: по баллу за длину (>=8, >=12) и за каждый
// присутствующий класс символов.
func Strength(password string) Level {
	c := classify(password)
	n := len([]rune(password))

	points := 0
	if n >= 8 {
		points++
	}
	if n >= 12 {
		points++
	}
	for _, has := range []bool{c.lower, c.upper, c.digit, c.other} {
		if has {
			points++
		}
	}

	switch {
	case points < 3:
		return Weak
	case points < 5:
		return Medium
	default:
		return Strong
	}
}

// Score оценивает пароль по шкале 0..100: до 40 за длину, остальное за классы.
func Score(password string) int {
	if password == "" {
		return 0
	}
	c := classify(password)

	score := 4 * len([]rune(password))
	if score > 40 {
		score = 40
	}
	if c.upper {
		score += 15
	}
	if c.lower {
		score += 10
	}
	if c.digit {
		score += 15
	}
	if c.other {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}
