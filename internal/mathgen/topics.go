package mathgen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
)

func randInt(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func factorial(n int) int {
	out := 1
	for i := 2; i <= n; i++ {
		out *= i
	}
	return out
}

var topics = []Topic{
	{0, "addition", "basic_math", func(r *rand.Rand) (string, string) {
		a, b := randInt(r, 1, 99), randInt(r, 1, 99)
		return fmt.Sprintf("$%d+%d=$", a, b), strconv.Itoa(a + b)
	}},
	{1, "subtraction", "basic_math", func(r *rand.Rand) (string, string) {
		a, b := randInt(r, 1, 99), randInt(r, 1, 99)
		if b > a {
			a, b = b, a
		}
		return fmt.Sprintf("$%d-%d=$", a, b), strconv.Itoa(a - b)
	}},
	{2, "multiplication", "basic_math", func(r *rand.Rand) (string, string) {
		a, b := randInt(r, 2, 12), randInt(r, 2, 12)
		return fmt.Sprintf("$%d\\cdot%d=$", a, b), strconv.Itoa(a * b)
	}},
	{3, "division", "basic_math", func(r *rand.Rand) (string, string) {
		d, q := randInt(r, 2, 12), randInt(r, 2, 12)
		return fmt.Sprintf("$%d\\div%d=$", d*q, d), strconv.Itoa(q)
	}},
	{4, "square", "basic_math", func(r *rand.Rand) (string, string) {
		a := randInt(r, 1, 20)
		return fmt.Sprintf("$%d^{2}=$", a), strconv.Itoa(a * a)
	}},
	{5, "square_root", "basic_math", func(r *rand.Rand) (string, string) {
		a := randInt(r, 1, 20)
		return fmt.Sprintf("$\\sqrt{%d}=$", a*a), strconv.Itoa(a)
	}},
	{6, "power", "basic_math", func(r *rand.Rand) (string, string) {
		base, exp := randInt(r, 2, 9), randInt(r, 2, 4)
		result := 1
		for i := 0; i < exp; i++ {
			result *= base
		}
		return fmt.Sprintf("$%d^{%d}=$", base, exp), strconv.Itoa(result)
	}},
	{7, "modulus", "basic_math", func(r *rand.Rand) (string, string) {
		a, b := randInt(r, 10, 99), randInt(r, 2, 9)
		return fmt.Sprintf("$%d \\bmod %d=$", a, b), strconv.Itoa(a % b)
	}},
	{8, "percentage", "basic_math", func(r *rand.Rand) (string, string) {
		p, a := randInt(r, 1, 99), randInt(r, 1, 99)
		value := float64(p) * float64(a) / 100
		return fmt.Sprintf("What is %d%% of %d?", p, a), strconv.FormatFloat(value, 'f', -1, 64)
	}},
	{9, "fraction_to_decimal", "basic_math", func(r *rand.Rand) (string, string) {
		den := randInt(r, 2, 20)
		num := randInt(r, 1, den*2)
		value := math.Round(float64(num)/float64(den)*100) / 100
		return fmt.Sprintf("Convert $\\frac{%d}{%d}$ to a decimal (2 places)", num, den),
			strconv.FormatFloat(value, 'f', -1, 64)
	}},
	{10, "mean", "statistics", func(r *rand.Rand) (string, string) {
		n := randInt(r, 4, 8)
		values := make([]int, n)
		sum := 0
		for i := range values {
			values[i] = randInt(r, 1, 50)
			sum += values[i]
		}
		value := math.Round(float64(sum)/float64(n)*100) / 100
		return fmt.Sprintf("Find the mean of %v", values), strconv.FormatFloat(value, 'f', -1, 64)
	}},
	{11, "median", "statistics", func(r *rand.Rand) (string, string) {
		n := 1 + 2*randInt(r, 1, 3) // odd count
		values := make([]int, n)
		for i := range values {
			values[i] = randInt(r, 1, 50)
		}
		problem := fmt.Sprintf("Find the median of %v", values)
		sorted := append([]int(nil), values...)
		sort.Ints(sorted)
		return problem, strconv.Itoa(sorted[n/2])
	}},
	{12, "gcd", "basic_math", func(r *rand.Rand) (string, string) {
		a, b := randInt(r, 2, 99), randInt(r, 2, 99)
		return fmt.Sprintf("$GCD(%d, %d)=$", a, b), strconv.Itoa(gcd(a, b))
	}},
	{13, "lcm", "basic_math", func(r *rand.Rand) (string, string) {
		a, b := randInt(r, 2, 20), randInt(r, 2, 20)
		return fmt.Sprintf("$LCM(%d, %d)=$", a, b), strconv.Itoa(a * b / gcd(a, b))
	}},
	{14, "factorial", "basic_math", func(r *rand.Rand) (string, string) {
		n := randInt(r, 0, 6)
		return fmt.Sprintf("$%d! =$", n), strconv.Itoa(factorial(n))
	}},
	{15, "binary_to_decimal", "computer_science", func(r *rand.Rand) (string, string) {
		n := int64(randInt(r, 2, 255))
		return fmt.Sprintf("Convert %s from binary to decimal", strconv.FormatInt(n, 2)),
			strconv.FormatInt(n, 10)
	}},
	{16, "is_prime", "misc", func(r *rand.Rand) (string, string) {
		n := randInt(r, 2, 97)
		answer := "Yes"
		for i := 2; i*i <= n; i++ {
			if n%i == 0 {
				answer = "No"
				break
			}
		}
		return fmt.Sprintf("Is %d a prime number?", n), answer
	}},
	{17, "dice_sum_probability", "statistics", func(r *rand.Rand) (string, string) {
		target := randInt(r, 2, 12)
		ways := 6 - int(math.Abs(float64(target-7)))
		g := gcd(ways, 36)
		return fmt.Sprintf("What is the probability of rolling a sum of %d with two dice?", target),
			fmt.Sprintf("$\\frac{%d}{%d}$", ways/g, 36/g)
	}},
	{18, "power_rule_differentiation", "calculus", func(r *rand.Rand) (string, string) {
		coef, exp := randInt(r, 1, 5), randInt(r, 2, 5)
		return fmt.Sprintf("Differentiate $%dx^{%d}$ with respect to x", coef, exp),
			fmt.Sprintf("$%dx^{%d}$", coef*exp, exp-1)
	}},
	{19, "circle_area", "geometry", func(r *rand.Rand) (string, string) {
		radius := randInt(r, 1, 20)
		area := math.Round(math.Pi*float64(radius*radius)*100) / 100
		return fmt.Sprintf("Find the area of a circle with radius %d (2 places)", radius),
			strconv.FormatFloat(area, 'f', -1, 64)
	}},
	{20, "rectangle_perimeter", "geometry", func(r *rand.Rand) (string, string) {
		length, width := randInt(r, 1, 50), randInt(r, 1, 50)
		return fmt.Sprintf("Find the perimeter of a rectangle with length %d and width %d", length, width),
			strconv.Itoa(2 * (length + width))
	}},
	{21, "pythagorean_hypotenuse", "geometry", func(r *rand.Rand) (string, string) {
		m, n := randInt(r, 2, 5), 1
		a, b, c := m*m-n*n, 2*m*n, m*m+n*n
		return fmt.Sprintf("A right triangle has legs %d and %d. Find the hypotenuse.", a, b),
			strconv.Itoa(c)
	}},
	{22, "triangle_area", "geometry", func(r *rand.Rand) (string, string) {
		base, height := randInt(r, 1, 20), randInt(r, 1, 20)
		return fmt.Sprintf("Find the area of a triangle with base %d and height %d", base, height),
			strconv.FormatFloat(float64(base*height)/2, 'f', -1, 64)
	}},
	{23, "combinations", "statistics", func(r *rand.Rand) (string, string) {
		n := randInt(r, 3, 9)
		k := randInt(r, 1, n)
		value := factorial(n) / (factorial(k) * factorial(n-k))
		return fmt.Sprintf("How many ways can %d items be chosen from %d?", k, n), strconv.Itoa(value)
	}},
	{24, "linear_equation", "algebra", func(r *rand.Rand) (string, string) {
		x, a, b := randInt(r, -10, 10), randInt(r, 2, 9), randInt(r, 1, 20)
		return fmt.Sprintf("Solve $%dx + %d = %d$ for x", a, b, a*x+b), strconv.Itoa(x)
	}},
	{25, "simple_interest", "algebra", func(r *rand.Rand) (string, string) {
		principal, rate, years := randInt(r, 100, 1000), randInt(r, 1, 12), randInt(r, 1, 10)
		interest := math.Round(float64(principal*rate*years)) / 100
		return fmt.Sprintf("Find the simple interest on %d at %d%% for %d years", principal, rate, years),
			strconv.FormatFloat(interest, 'f', -1, 64)
	}},
	{26, "decimal_to_binary", "computer_science", func(r *rand.Rand) (string, string) {
		n := int64(randInt(r, 2, 255))
		return fmt.Sprintf("Convert %d to binary", n), strconv.FormatInt(n, 2)
	}},
	{27, "leap_year", "misc", func(r *rand.Rand) (string, string) {
		year := randInt(r, 1900, 2100)
		answer := "No"
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			answer = "Yes"
		}
		return fmt.Sprintf("Is %d a leap year?", year), answer
	}},
}
