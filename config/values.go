package config

// Int loads a required integer.
func (s Section) Int(key string) (int, error) {
	var v int
	err := s.decode(key, &v)
	return v, err
}

// IntOr loads an optional integer with the given default.
func (s Section) IntOr(key string, def int) (int, error) {
	if !s.Has(key) {
		return def, nil
	}
	return s.Int(key)
}

// PositiveInt loads a required integer greater than zero.
func (s Section) PositiveInt(key string) (int, error) {
	v, err := s.Int(key)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, s.notPositive(key, v)
	}
	return v, nil
}

// Float loads a required floating point number.
func (s Section) Float(key string) (float64, error) {
	var v float64
	err := s.decode(key, &v)
	return v, err
}

// PositiveFloat loads a required floating point number greater than zero.
func (s Section) PositiveFloat(key string) (float64, error) {
	v, err := s.Float(key)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, s.notPositive(key, v)
	}
	return v, nil
}

// PositiveFloatOr loads an optional positive floating point number with the
// given default.
func (s Section) PositiveFloatOr(key string, def float64) (float64, error) {
	if !s.Has(key) {
		return def, nil
	}
	return s.PositiveFloat(key)
}

// Bool loads a required boolean.
func (s Section) Bool(key string) (bool, error) {
	var v bool
	err := s.decode(key, &v)
	return v, err
}

// BoolOr loads an optional boolean with the given default.
func (s Section) BoolOr(key string, def bool) (bool, error) {
	if !s.Has(key) {
		return def, nil
	}
	return s.Bool(key)
}

// String loads a required string.
func (s Section) String(key string) (string, error) {
	var v string
	err := s.decode(key, &v)
	return v, err
}

// StringOr loads an optional string with the given default.
func (s Section) StringOr(key string, def string) (string, error) {
	if !s.Has(key) {
		return def, nil
	}
	return s.String(key)
}

// StringList loads an optional list of strings. A missing key yields an empty
// list.
func (s Section) StringList(key string) ([]string, error) {
	if !s.Has(key) {
		return []string{}, nil
	}
	v := make([]string, 0)
	err := s.decode(key, &v)
	return v, err
}
