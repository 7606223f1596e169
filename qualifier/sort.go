package qualifier

func LessQualifier(qs []*Qualifier) func(int, int) bool {
	return func(i, j int) bool {
		return qs[i].LessThan(qs[j])
	}
}

func Reverse(less func(int, int) bool) func(int, int) bool {
	return func(i, j int) bool {
		return less(j, i)
	}
}
