// =================================================================================
//
//			mx-alias - https://www.foxhollow.cc/projects/mx-alias/
//
//		 mx-alias reads the card routing of a digital mixing console and
//	  names the matching audio interface ports on the recording host
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package mixer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Resolve runs resolve for every index in [0, count) concurrently and keeps
// the results in index order. The first error cancels the rest.
func Resolve[T any](ctx context.Context, count int, resolve func(ctx context.Context, index int) (T, error)) ([]T, error) {
	results := make([]T, count)
	group, groupCtx := errgroup.WithContext(ctx)

	for i := range count {
		group.Go(func() error {
			result, err := resolve(groupCtx, i)
			if err != nil {
				return err
			}

			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Flatten concatenates label blocks in order.
func Flatten(blocks [][]Label) []Label {
	size := 0
	for _, block := range blocks {
		size += len(block)
	}

	labels := make([]Label, 0, size)
	for _, block := range blocks {
		labels = append(labels, block...)
	}

	return labels
}
