// Copyright 2020 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package explorer

import (
	"fmt"
	"math/big"
)

// sumAmounts adds decimal token amounts. Amounts are u128 yoctoNEAR values
// and overflow 64-bit arithmetic.
func sumAmounts(amounts ...string) (string, error) {
	total := new(big.Int)
	for _, amount := range amounts {
		value, ok := new(big.Int).SetString(amount, 10)
		if !ok || !isUnsigned(amount) {
			return "", fmt.Errorf("invalid amount %q", amount)
		}
		total.Add(total, value)
	}
	return total.String(), nil
}

func isUnsigned(amount string) bool {
	return amount != "" && amount[0] != '-' && amount[0] != '+'
}

func sumGas(gas ...uint64) string {
	total := new(big.Int)
	for _, value := range gas {
		total.Add(total, new(big.Int).SetUint64(value))
	}
	return total.String()
}
