package mathcheck

// Side holds everything the checker could read out of one answer.
// Pointer fields are nil when the answer does not have that shape.
type Side struct {
	Raw        string    `json:"raw"`
	Normalized string    `json:"normalized"`
	Fraction   *Fraction `json:"fraction,omitempty"`
	Number     *float64  `json:"number,omitempty"`
	Exponent   *float64  `json:"exponent,omitempty"`
	Expression *float64  `json:"expression,omitempty"`
}

// Explanation describes how a comparison was decided. It is a debugging
// aid and always agrees with Compare.
type Explanation struct {
	User       Side     `json:"user"`
	Correct    Side     `json:"correct"`
	Tolerance  float64  `json:"tolerance"`
	Strategy   Strategy `json:"strategy"`
	Equivalent bool     `json:"equivalent"`
}

// Explain compares user and correct under DefaultConfig and reports the
// intermediate values.
func Explain(user, correct string) Explanation {
	return defaultChecker.Explain(user, correct)
}

// Explain compares user and correct and reports the intermediate values.
func (c *Checker) Explain(user, correct string) Explanation {
	strategy := c.Match(user, correct)
	return Explanation{
		User:       c.inspect(user),
		Correct:    c.inspect(correct),
		Tolerance:  c.cfg.Tolerance,
		Strategy:   strategy,
		Equivalent: strategy != StrategyNone,
	}
}

func (c *Checker) inspect(raw string) Side {
	side := Side{Raw: raw, Normalized: Normalize(raw)}
	if f, ok := ParseFraction(side.Normalized); ok {
		side.Fraction = &f
	}
	if n, ok := ParseNumber(side.Normalized); ok {
		side.Number = &n
	}
	if e, ok := c.EvaluateExponent(side.Normalized); ok {
		side.Exponent = &e
	}
	if v, ok := c.EvaluateSimpleExpression(side.Normalized); ok {
		side.Expression = &v
	}
	return side
}
