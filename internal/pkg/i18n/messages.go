package i18n

var polish = map[string]string{
	"common.bad_request":      "Nieprawidłowe dane żądania",
	"common.validation":       "Formularz zawiera błędy",
	"common.internal":         "Wystąpił błąd serwera. Spróbuj ponownie",
	"common.not_found":        "Nie znaleziono rekordu",
	"common.invalid_id":       "Nieprawidłowy identyfikator",
	"auth.unauthorized":       "Wymagane zalogowanie",
	"auth.header_missing":     "Brak nagłówka autoryzacji",
	"auth.invalid_format":     "Nieprawidłowy format nagłówka autoryzacji",
	"auth.invalid_token":      "Sesja wygasła. Zaloguj się ponownie",
	"auth.invalid_login":      "Nieprawidłowy email lub hasło",
	"auth.forbidden":          "Brak uprawnień do tego modułu",
	"offer.not_found":         "Nie znaleziono oferty",
	"offer.item_not_found":    "Nie znaleziono pozycji oferty",
	"offer.product_not_found": "Nie znaleziono produktu",
	"offer.invalid_quantity":  "Ilość nie może być ujemna",
	"offer.invalid_price":     "Cena nie może być ujemna",
	"offer.invalid_discount":  "Rabat musi mieścić się w zakresie 0-100%",
	"offer.invalid_vat":       "Stawka VAT nie może być ujemna",
	"offer.empty":             "Oferta musi zawierać co najmniej jedną pozycję",
	"offer.export_failed":     "Nie udało się wygenerować pliku oferty",
	"equipment.not_found":     "Nie znaleziono sprzętu",
	"equipment.unit_missing":  "Nie znaleziono egzemplarza sprzętu",
	"equipment.cycle":         "Kategorie tworzą cykl. Popraw kategorię nadrzędną",
	"equipment.category":      "Nie znaleziono kategorii",
	"equipment.status":        "Nieznany status egzemplarza",
	"equipment.kit_units":     "Zestaw nie posiada własnych egzemplarzy",
	"task.not_found":          "Nie znaleziono zadania",
	"task.invalid_column":     "Nieznana kolumna tablicy zadań",
	"task.move_failed":        "Nie udało się przenieść zadania. Przywrócono poprzedni stan",
	"task.comment_empty":      "Komentarz nie może być pusty",
	"task.comment_failed":     "Nie udało się wysłać komentarza",
	"task.comment_not_found":  "Nie znaleziono komentarza",
	"task.attachment_missing": "Nie znaleziono załącznika",
	"contact.not_found":       "Nie znaleziono kontaktu",
	"contact.org_not_found":   "Nie znaleziono organizacji",
	"contact.invalid_type":    "Nieznany typ kontaktu",
	"event.not_found":         "Nie znaleziono wydarzenia",
	"event.invalid_status":    "Nieznany status wydarzenia",
	"employee.not_found":      "Nie znaleziono pracownika",
	"employee.view_mode":      "Nieznany tryb widoku",
	"employee.email_exists":   "Pracownik z tym adresem email już istnieje",
	"notification.not_found":  "Nie znaleziono powiadomienia",
	"storage.not_found":       "Nie znaleziono pliku",
	"storage.exists":          "Plik o tej nazwie już istnieje",
	"storage.too_large":       "Plik jest zbyt duży",
	"storage.link_expired":    "Link do pliku wygasł",
	"storage.bucket":          "Nieznany zasobnik plików",
	"notify.task_moved":       "Zadanie „%s” przeniesiono do kolumny %s",
	"notify.task_comment":     "Nowy komentarz w zadaniu „%s”",
	"notify.task_assigned":    "Przypisano Ci nowe zadanie",
	"notify.task_moved_title": "Zmiana statusu zadania",
	"contact.relation_exists": "Kontakt jest już powiązany z tą organizacją",
	"event.folder_name":       "Nieprawidłowa nazwa folderu",
}

var english = map[string]string{
	"common.bad_request":      "Invalid request",
	"common.validation":       "The form contains errors",
	"common.internal":         "Server error. Please try again",
	"common.not_found":        "Record not found",
	"common.invalid_id":       "Invalid identifier",
	"auth.unauthorized":       "Authentication required",
	"auth.header_missing":     "Authorization header is missing",
	"auth.invalid_format":     "Invalid authorization header format",
	"auth.invalid_token":      "Session expired. Please sign in again",
	"auth.invalid_login":      "Invalid email or password",
	"auth.forbidden":          "You do not have access to this module",
	"offer.not_found":         "Offer not found",
	"offer.item_not_found":    "Offer item not found",
	"offer.product_not_found": "Product not found",
	"offer.invalid_quantity":  "Quantity cannot be negative",
	"offer.invalid_price":     "Price cannot be negative",
	"offer.invalid_discount":  "Discount must be between 0 and 100%",
	"offer.invalid_vat":       "VAT rate cannot be negative",
	"offer.empty":             "An offer needs at least one item",
	"offer.export_failed":     "Could not generate the offer file",
	"equipment.not_found":     "Equipment not found",
	"equipment.unit_missing":  "Equipment unit not found",
	"equipment.cycle":         "Categories form a cycle. Fix the parent category",
	"equipment.category":      "Category not found",
	"equipment.status":        "Unknown unit status",
	"equipment.kit_units":     "Kits do not carry their own units",
	"task.not_found":          "Task not found",
	"task.invalid_column":     "Unknown board column",
	"task.move_failed":        "Could not move the task. The previous state was restored",
	"task.comment_empty":      "Comment cannot be empty",
	"task.comment_failed":     "Could not send the comment",
	"task.comment_not_found":  "Comment not found",
	"task.attachment_missing": "Attachment not found",
	"contact.not_found":       "Contact not found",
	"contact.org_not_found":   "Organization not found",
	"contact.invalid_type":    "Unknown contact type",
	"event.not_found":         "Event not found",
	"event.invalid_status":    "Unknown event status",
	"employee.not_found":      "Employee not found",
	"employee.view_mode":      "Unknown view mode",
	"employee.email_exists":   "An employee with this email already exists",
	"notification.not_found":  "Notification not found",
	"storage.not_found":       "File not found",
	"storage.exists":          "A file with this name already exists",
	"storage.too_large":       "File is too large",
	"storage.link_expired":    "The file link has expired",
	"storage.bucket":          "Unknown storage bucket",
	"notify.task_moved":       "Task \"%s\" moved to %s",
	"notify.task_comment":     "New comment on task \"%s\"",
	"notify.task_assigned":    "You have been assigned a new task",
	"notify.task_moved_title": "Task status changed",
	"contact.relation_exists": "The contact is already linked to this organization",
	"event.folder_name":       "Invalid folder name",
}
