package utils

//PadSequence makes sure given sequence has the wanted length. In case it's longer it's truncated, in case it's shorter
//the last element is repeated. In case given sequence is shorter than half of wanted length - it returns nil (invalid data)
func PadSequence[T any](seq []T, length int) []T {
	if len(seq) == length {
		return seq
	}

	if len(seq) > length {
		return seq[:length]
	}

	if len(seq) == 0 || float64(len(seq)) < float64(length)*0.5 {
		return nil
	}

	padded := make([]T, length)
	copy(padded, seq)
	for i := len(seq); i < length; i++ {
		padded[i] = seq[len(seq)-1]
	}

	return padded
}
