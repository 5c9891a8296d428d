package password

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

//go:embed common_passwords.txt
var defaultCommonPasswords string

// Attributes are the user values a password must not resemble.
type Attributes map[string]string

type Validator interface {
	Validate(password string, attrs Attributes) error
}

type Policy struct {
	validators []Validator
}

func NewPolicy(validators ...Validator) *Policy {
	return &Policy{validators: validators}
}

// Check runs every validator and returns all failure messages.
func (p *Policy) Check(password string, attrs Attributes) []string {
	var messages []string
	for _, v := range p.validators {
		if err := v.Validate(password, attrs); err != nil {
			messages = append(messages, err.Error())
		}
	}
	return messages
}

// Options configures NewPolicyFromNames.
type Options struct {
	MinLength  int
	CommonList io.Reader
}

// NewPolicyFromNames builds a policy from configured validator names:
// minimum_length, common, numeric, user_attribute_similarity.
func NewPolicyFromNames(names []string, opts Options) (*Policy, error) {
	var validators []Validator
	for _, name := range names {
		switch name {
		case "minimum_length":
			validators = append(validators, MinimumLength(opts.MinLength))
		case "common":
			list := opts.CommonList
			if list == nil {
				list = strings.NewReader(defaultCommonPasswords)
			}
			v, err := NewCommonPasswordValidator(list)
			if err != nil {
				return nil, err
			}
			validators = append(validators, v)
		case "numeric":
			validators = append(validators, NumericPassword{})
		case "user_attribute_similarity":
			validators = append(validators, UserAttributeSimilarity{MaxSimilarity: DefaultMaxSimilarity})
		default:
			return nil, fmt.Errorf("unknown password validator %q", name)
		}
	}
	return NewPolicy(validators...), nil
}

type MinimumLength int

func (m MinimumLength) Validate(password string, _ Attributes) error {
	if len([]rune(password)) < int(m) {
		return fmt.Errorf("This password is too short. It must contain at least %d characters.", int(m))
	}
	return nil
}

type CommonPasswordValidator struct {
	passwords map[string]struct{}
}

// NewCommonPasswordValidator reads one password per line; matching is case-insensitive.
func NewCommonPasswordValidator(r io.Reader) (*CommonPasswordValidator, error) {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read common password list: %w", err)
	}
	return &CommonPasswordValidator{passwords: set}, nil
}

func (c *CommonPasswordValidator) Validate(password string, _ Attributes) error {
	if _, ok := c.passwords[strings.ToLower(strings.TrimSpace(password))]; ok {
		return fmt.Errorf("This password is too common.")
	}
	return nil
}

type NumericPassword struct{}

func (NumericPassword) Validate(password string, _ Attributes) error {
	if password == "" {
		return nil
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return fmt.Errorf("This password is entirely numeric.")
}

const DefaultMaxSimilarity = 0.7

var nonWord = regexp.MustCompile(`\W+`)

type UserAttributeSimilarity struct {
	MaxSimilarity float64
}

func (u UserAttributeSimilarity) Validate(password string, attrs Attributes) error {
	lower := strings.ToLower(password)
	for name, value := range attrs {
		if value == "" {
			continue
		}
		value = strings.ToLower(value)
		parts := append(nonWord.Split(value, -1), value)
		for _, part := range parts {
			if part == "" {
				continue
			}
			if similarity(lower, part) >= u.MaxSimilarity {
				return fmt.Errorf("The password is too similar to the %s.", strings.ReplaceAll(name, "_", " "))
			}
		}
	}
	return nil
}

func similarity(a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
