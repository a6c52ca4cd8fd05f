// Package correct turns noisy P and S picks of a source/receiver line into
// smooth, outlier-free arrival times.
//
// Each source is placed at its own receiver index. Depending on how many
// receivers lie on either side, one of three cases applies (see [Classify]):
//
//   - [NearStart]: too few receivers on the left. The right side is fitted
//     and the nearest right-side values are mirrored onto the left.
//   - [Interior]: both sides are fitted independently. The right fit also
//     uses the last left pick as an anchor next to the source.
//   - [NearEnd]: too few receivers on the right. The left side is fitted
//     and mirrored onto the right.
//
// [CorrectSource] handles one source, [Run] drives a whole pick table.
package correct
