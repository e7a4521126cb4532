package service

// MutationResult исход мутирующей операции. Ровно один из вариантов:
//   - навигация: RedirectTo не пустой, вызывающий обязан перейти по адресу;
//   - ошибка: Message и/или FieldErrors заполнены, навигации нет;
//   - успех без навигации: все поля пустые.
//
// Редирект — явная ветка результата, а не исключение с прерыванием потока управления.
type MutationResult struct {
	RedirectTo  string
	Message     string
	FieldErrors map[string][]string
}

func (r *MutationResult) Succeeded() bool {
	return r.Message == "" && len(r.FieldErrors) == 0
}

func (r *MutationResult) Navigates() bool {
	return r.RedirectTo != ""
}

func navigateTo(path string) *MutationResult {
	return &MutationResult{RedirectTo: path}
}

func failure(message string, fieldErrors map[string][]string) *MutationResult {
	return &MutationResult{Message: message, FieldErrors: fieldErrors}
}
