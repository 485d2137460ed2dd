package serpent

import "math/bits"

// The eight Serpent S-boxes and their inverses as bitsliced boolean
// networks, using the register sequences published by Gladman and
// Simpson. Each function maps four 32-bit words to four words; bit i
// of the inputs selects row i of the corresponding 4x4-bit table.

func sb0(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r0 ^ r3
	t1 := r2 ^ t0
	t2 := r1 ^ t1
	s3 := (r0 & r3) ^ t2
	t3 := r0 ^ (r1 & t0)
	s2 := t2 ^ (r2 | t3)
	t4 := s3 & (t1 ^ t3)
	s1 := ^t1 ^ t4
	s0 := t4 ^ ^t3
	return s0, s1, s2, s3
}

func sb0Inv(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := ^r0
	t1 := r0 ^ r1
	t2 := r3 ^ (t0 | t1)
	t3 := r2 ^ t2
	s2 := t1 ^ t3
	t4 := t0 ^ (r3 & t1)
	s1 := t2 ^ (s2 & t4)
	s3 := (r0 & t2) ^ (t3 | s1)
	s0 := s3 ^ (t3 ^ t4)
	return s0, s1, s2, s3
}

func sb1(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r1 ^ ^r0
	t1 := r2 ^ (r0 | t0)
	s2 := r3 ^ t1
	t2 := r1 ^ (r3 | t0)
	t3 := t0 ^ s2
	s3 := t3 ^ (t1 & t2)
	t4 := t1 ^ t2
	s1 := s3 ^ t4
	s0 := t1 ^ (t3 & t4)
	return s0, s1, s2, s3
}

func sb1Inv(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r1 ^ r3
	t1 := r0 ^ (r1 & t0)
	t2 := t0 ^ t1
	s3 := r2 ^ t2
	t3 := r1 ^ (t0 & t1)
	t4 := s3 | t3
	s1 := t1 ^ t4
	t5 := ^s1
	t6 := s3 ^ t3
	s0 := t5 ^ t6
	s2 := t2 ^ (t5 | t6)
	return s0, s1, s2, s3
}

func sb2(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := ^r0
	t1 := r1 ^ r3
	t2 := r2 & t0
	s0 := t1 ^ t2
	t3 := r2 ^ t0
	t4 := r2 ^ s0
	t5 := r1 & t4
	s3 := t3 ^ t5
	s2 := r0 ^ ((r3 | t5) & (s0 | t3))
	s1 := (t1 ^ s3) ^ (s2 ^ (r3 | t0))
	return s0, s1, s2, s3
}

func sb2Inv(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r1 ^ r3
	t1 := ^t0
	t2 := r0 ^ r2
	t3 := r2 ^ t0
	t4 := r1 & t3
	s0 := t2 ^ t4
	t5 := r0 | t1
	t6 := r3 ^ t5
	t7 := t2 | t6
	s3 := t0 ^ t7
	t8 := ^t3
	t9 := s0 | s3
	s1 := t8 ^ t9
	s2 := (r3 & t8) ^ (t2 ^ t9)
	return s0, s1, s2, s3
}

func sb3(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r0 ^ r1
	t1 := r0 & r2
	t2 := r0 | r3
	t3 := r2 ^ r3
	t4 := t0 & t2
	t5 := t1 | t4
	s2 := t3 ^ t5
	t6 := r1 ^ t2
	t7 := t5 ^ t6
	t8 := t3 & t7
	s0 := t0 ^ t8
	t9 := s2 & s0
	s1 := t7 ^ t9
	s3 := (r1 | r3) ^ (t3 ^ t9)
	return s0, s1, s2, s3
}

func sb3Inv(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r0 | r1
	t1 := r1 ^ r2
	t2 := r1 & t1
	t3 := r0 ^ t2
	t4 := r2 ^ t3
	t5 := r3 | t3
	s0 := t1 ^ t5
	t6 := t1 | t5
	t7 := r3 ^ t6
	s2 := t4 ^ t7
	t8 := t0 ^ t7
	t9 := s0 & t8
	s3 := t3 ^ t9
	s1 := s3 ^ (s0 ^ t8)
	return s0, s1, s2, s3
}

func sb4(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r0 ^ r3
	t1 := r3 & t0
	t2 := r2 ^ t1
	t3 := r1 | t2
	s3 := t0 ^ t3
	t4 := ^r1
	t5 := t0 | t4
	s0 := t2 ^ t5
	t6 := r0 & s0
	t7 := t0 ^ t4
	t8 := t3 & t7
	s2 := t6 ^ t8
	s1 := (r0 ^ t2) ^ (t7 & s2)
	return s0, s1, s2, s3
}

func sb4Inv(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r2 | r3
	t1 := r0 & t0
	t2 := r1 ^ t1
	t3 := r0 & t2
	t4 := r2 ^ t3
	s1 := r3 ^ t4
	t5 := ^r0
	t6 := t4 & s1
	s3 := t2 ^ t6
	t7 := s1 | t5
	t8 := r3 ^ t7
	s0 := s3 ^ t8
	s2 := (t2 & t8) ^ (s1 ^ t5)
	return s0, s1, s2, s3
}

func sb5(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := ^r0
	t1 := r0 ^ r1
	t2 := r0 ^ r3
	t3 := r2 ^ t0
	t4 := t1 | t2
	s0 := t3 ^ t4
	t5 := r3 & s0
	t6 := t1 ^ s0
	s1 := t5 ^ t6
	t7 := t0 | s0
	t8 := t1 | t5
	t9 := t2 ^ t7
	s2 := t8 ^ t9
	s3 := (r1 ^ t5) ^ (s1 & t9)
	return s0, s1, s2, s3
}

func sb5Inv(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := ^r2
	t1 := r1 & t0
	t2 := r3 ^ t1
	t3 := r0 & t2
	t4 := r1 ^ t0
	s3 := t3 ^ t4
	t5 := r1 | s3
	t6 := r0 & t5
	s1 := t2 ^ t6
	t7 := r0 | r3
	t8 := t0 ^ t5
	s0 := t7 ^ t8
	s2 := (r1 & t7) ^ (t3 | (r0 ^ r2))
	return s0, s1, s2, s3
}

func sb6(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := ^r0
	t1 := r0 ^ r3
	t2 := r1 ^ t1
	t3 := t0 | t1
	t4 := r2 ^ t3
	s1 := r1 ^ t4
	t5 := t1 | s1
	t6 := r3 ^ t5
	t7 := t4 & t6
	s2 := t2 ^ t7
	t8 := t4 ^ t6
	s0 := s2 ^ t8
	s3 := ^t4 ^ (t2 & t8)
	return s0, s1, s2, s3
}

func sb6Inv(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := ^r0
	t1 := r0 ^ r1
	t2 := r2 ^ t1
	t3 := r2 | t0
	t4 := r3 ^ t3
	s1 := t2 ^ t4
	t5 := t2 & t4
	t6 := t1 ^ t5
	t7 := r1 | t6
	s3 := t4 ^ t7
	t8 := r1 | s3
	s0 := t6 ^ t8
	s2 := (r3 & t0) ^ (t2 ^ t8)
	return s0, s1, s2, s3
}

func sb7(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r1 ^ r2
	t1 := r2 & t0
	t2 := r3 ^ t1
	t3 := r0 ^ t2
	t4 := r3 | t0
	t5 := t3 & t4
	s1 := r1 ^ t5
	t6 := t2 | s1
	t7 := r0 & t3
	s3 := t0 ^ t7
	t8 := t3 ^ t6
	t9 := s3 & t8
	s2 := t2 ^ t9
	s0 := ^t8 ^ (s3 & s2)
	return s0, s1, s2, s3
}

func sb7Inv(r0, r1, r2, r3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := r2 | (r0 & r1)
	t1 := r3 & (r0 | r1)
	s3 := t0 ^ t1
	t2 := ^r3
	t3 := r1 ^ t1
	t4 := t3 | (s3 ^ t2)
	s1 := r0 ^ t4
	s0 := (r2 ^ t3) ^ (r3 | s1)
	s2 := (t0 ^ s1) ^ (s0 ^ (r0 & s3))
	return s0, s1, s2, s3
}

type sboxFunc func(uint32, uint32, uint32, uint32) (uint32, uint32, uint32, uint32)

var sboxes = [8]sboxFunc{sb0, sb1, sb2, sb3, sb4, sb5, sb6, sb7}

var sboxesInv = [8]sboxFunc{sb0Inv, sb1Inv, sb2Inv, sb3Inv, sb4Inv, sb5Inv, sb6Inv, sb7Inv}

// linear is the Serpent linear transformation: rotations and shifts
// chosen so every plaintext bit affects all 128 output bits within a
// few rounds.
func linear(w0, w1, w2, w3 uint32) (uint32, uint32, uint32, uint32) {
	t0 := bits.RotateLeft32(w0, 13)
	t2 := bits.RotateLeft32(w2, 3)
	t1 := w1 ^ t0 ^ t2
	t3 := w3 ^ t2 ^ (t0 << 3)
	o1 := bits.RotateLeft32(t1, 1)
	o3 := bits.RotateLeft32(t3, 7)
	t0 ^= o1 ^ o3
	t2 ^= o3 ^ (o1 << 7)
	o0 := bits.RotateLeft32(t0, 5)
	o2 := bits.RotateLeft32(t2, 22)
	return o0, o1, o2, o3
}

// linearInv undoes linear by replaying its steps backwards.
func linearInv(w0, w1, w2, w3 uint32) (uint32, uint32, uint32, uint32) {
	t2 := bits.RotateLeft32(w2, -22)
	t0 := bits.RotateLeft32(w0, -5)
	t2 ^= w3 ^ (w1 << 7)
	t0 ^= w1 ^ w3
	t3 := bits.RotateLeft32(w3, -7)
	t1 := bits.RotateLeft32(w1, -1)
	o3 := t3 ^ t2 ^ (t0 << 3)
	o1 := t1 ^ t0 ^ t2
	o2 := bits.RotateLeft32(t2, -3)
	o0 := bits.RotateLeft32(t0, -13)
	return o0, o1, o2, o3
}
