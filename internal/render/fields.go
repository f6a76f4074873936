package render

import "fmt"

// Form field naming for respondent answers.

func ScalarField(questionID uint) string {
	return fmt.Sprintf("q_%d", questionID)
}

func ArrayField(questionID uint) string {
	return fmt.Sprintf("q_%d[]", questionID)
}

func OtherField(questionID uint) string {
	return fmt.Sprintf("q_%d_other", questionID)
}

func MatchingField(questionID uint, itemIndex int) string {
	return fmt.Sprintf("q_%d_%d", questionID, itemIndex)
}
