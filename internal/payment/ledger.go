package payment

// rolloverQuantity computes the on-hand quantity remaining after a
// consumption event, applying the batch-rollover rule.
//
// The consumed amount is subtracted once up front. Then, while the consumed
// amount still covers a whole batch, one batch is subtracted from BOTH the
// running quantity and the consumed amount. The net effect is that
// consumption of a batch or more deducts the batch-sized chunks twice: once
// via the up-front subtraction and once inside the loop. That double
// deduction is the behavior the registers have always run with and reporting
// is calibrated against it, so it is kept verbatim pending a product
// decision. See DESIGN.md.
//
// No floor is applied; the result may be negative.
func rolloverQuantity(onHand, batchSize, consumed float64) float64 {
	newQuantity := onHand - consumed
	if batchSize <= 0 {
		return newQuantity
	}
	for consumed >= batchSize {
		newQuantity -= batchSize
		consumed -= batchSize
	}
	return newQuantity
}
